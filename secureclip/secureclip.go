package secureclip

import (
	"sync/atomic"
	"time"

	"github.com/atotto/clipboard"
	"github.com/sirupsen/logrus"
)

// DefaultTimeout is how long a copied password stays on the clipboard.
const DefaultTimeout = 30 * time.Second

// Clipper copies generated passwords to the system clipboard and clears them
// after a timeout.
type Clipper struct {
	timeout  time.Duration
	lastClip int64
	write    func(string) error
}

// New returns a Clipper that clears the clipboard `timeout` after the last
// Clip call.
func New(timeout time.Duration) *Clipper {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Clipper{
		timeout: timeout,
		write:   clipboard.WriteAll,
	}
}

// NewWithWriter returns a Clipper that writes through `write` instead of the
// system clipboard.
func NewWithWriter(timeout time.Duration, write func(string) error) *Clipper {
	c := New(timeout)
	c.write = write
	return c
}

// Timeout returns the clear timeout.
func (c *Clipper) Timeout() time.Duration {
	return c.timeout
}

// Clip copies the passphrase given by `passphrase` to the clipboard. The
// clipboard will be cleared after the timeout unless Clip is called again in
// the meantime.
func (c *Clipper) Clip(passphrase string) error {
	err := c.write(passphrase)
	if err != nil {
		return err
	}
	now := time.Now().UnixNano()
	atomic.StoreInt64(&c.lastClip, now)
	go func() {
		time.Sleep(c.timeout)
		if atomic.LoadInt64(&c.lastClip) != now {
			return
		}
		if err := c.write(""); err != nil {
			logrus.WithError(err).Warn("could not clear clipboard")
		}
	}()
	return nil
}

// Clear clears the clipboard.
func (c *Clipper) Clear() error {
	atomic.StoreInt64(&c.lastClip, 0)
	return c.write("")
}
