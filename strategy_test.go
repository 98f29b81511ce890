package locktable

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStrategy_String(t *testing.T) {
	tests := []struct {
		s    Strategy
		want string
	}{
		{s: Exclusive, want: "exclusive"},
		{s: SharedExclusive, want: "rwlock"},
		{s: TwoLevel, want: "twolevel"},
		{s: Strategy(42), want: "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.s.String())
	}
}

func TestStrategy_Capabilities(t *testing.T) {
	tests := []struct {
		name          string
		s             Strategy
		wantExclusive bool
		wantFine      bool
	}{
		{name: "exclusive", s: Exclusive, wantExclusive: true, wantFine: false},
		{name: "rwlock", s: SharedExclusive, wantExclusive: false, wantFine: false},
		{name: "twolevel", s: TwoLevel, wantExclusive: false, wantFine: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lock := tt.s.newBucketLock()
			_, isExclusive := lock.(*exclusiveLock)
			assert.Equal(t, tt.wantExclusive, isExclusive)

			assert.Equal(t, tt.wantFine, tt.s.fineGrained())
			if tt.wantFine {
				assert.NotNil(t, tt.s.newEntryLock())
			} else {
				assert.Nil(t, tt.s.newEntryLock())
			}
		})
	}
}

// The exclusive flavor's read side must be the same lock as its write side.
func TestExclusiveLock_ReadAliasesWrite(t *testing.T) {
	lock := Exclusive.newBucketLock()
	lock.RLock()
	released := make(chan struct{})
	go func() {
		lock.Lock() // blocks until the "read" holder releases
		lock.Unlock()
		close(released)
	}()

	time.Sleep(10 * time.Millisecond)
	select {
	case <-released:
		t.Fatal("write acquisition succeeded while read side was held")
	default:
	}
	lock.RUnlock()
	<-released
}
