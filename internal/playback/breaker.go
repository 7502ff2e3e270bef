package playback

// DefaultMaxErrorSkip is how many consecutive load failures end a session.
const DefaultMaxErrorSkip = 3

// Breaker counts consecutive failures within one session.
type Breaker struct {
	count int
	max   int
}

func NewBreaker(max int) Breaker {
	if max < 1 {
		max = DefaultMaxErrorSkip
	}
	return Breaker{max: max}
}

// Fail records a failure and reports whether the limit is reached.
func (b *Breaker) Fail() bool {
	b.count++
	return b.count >= b.max
}

// Reset clears the count after a success.
func (b *Breaker) Reset() { b.count = 0 }

func (b *Breaker) Count() int { return b.count }

func (b *Breaker) Max() int { return b.max }
