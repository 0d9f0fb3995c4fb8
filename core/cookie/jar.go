package cookie

import (
	"net/http"
	"sync"
)

// pending is a cookie queued on a Jar, with its plaintext for later reads.
type pending struct {
	cookie  *http.Cookie
	plain   string
	private bool
	removed bool
}

// Jar is a per-request view of cookies. Reads look at queued changes first and
// then at the request; writes are queued until Flush.
//
// A missing cookie is reported as an explicit false, as is a private cookie
// that fails to decrypt.
type Jar struct {
	m     *Manager
	r     *http.Request
	mu    sync.Mutex
	queue []pending
}

// Jar returns a cookie jar for the request.
func (m *Manager) Jar(r *http.Request) *Jar {
	return &Jar{m: m, r: r}
}

// Get returns the plain value of a cookie. A private cookie queued on this jar
// is reported as absent; read it with Private.
func (j *Jar) Get(name string) (string, bool) {
	j.mu.Lock()
	p, ok := j.lookup(name)
	j.mu.Unlock()
	if ok {
		if p.removed || p.private {
			return "", false
		}
		return p.plain, true
	}

	v, err := j.m.Get(j.r, name)
	return v, err == nil
}

// Private returns the decrypted value of a private cookie.
func (j *Jar) Private(name string) (string, bool) {
	j.mu.Lock()
	p, ok := j.lookup(name)
	j.mu.Unlock()
	if ok {
		if p.removed || !p.private {
			return "", false
		}
		return p.plain, true
	}

	v, err := j.m.GetEncrypted(j.r, name)
	if err != nil {
		return "", false
	}
	return v, true
}

// Add queues a plain cookie.
func (j *Jar) Add(name, value string, opts ...Option) error {
	c, err := j.m.newCookie(name, value, opts)
	if err != nil {
		return err
	}
	j.push(pending{cookie: c, plain: value})
	return nil
}

// AddPrivate queues a cookie whose value is encrypted and authenticated.
func (j *Jar) AddPrivate(name, value string, opts ...Option) error {
	sealed, err := j.m.encrypt(name, value)
	if err != nil {
		return err
	}
	c, err := j.m.newCookie(name, sealed, opts)
	if err != nil {
		return err
	}
	j.push(pending{cookie: c, plain: value, private: true})
	return nil
}

// Remove queues the removal of a cookie.
func (j *Jar) Remove(name string) {
	j.push(pending{cookie: j.m.removal(name), removed: true})
}

// RemovePrivate queues the removal of a private cookie.
func (j *Jar) RemovePrivate(name string) {
	j.push(pending{cookie: j.m.removal(name), private: true, removed: true})
}

// Pending reports the number of queued cookies.
func (j *Jar) Pending() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.queue)
}

// Flush writes queued cookies as Set-Cookie headers and empties the queue.
// Only the last change per cookie name is written.
func (j *Jar) Flush(w http.ResponseWriter) {
	j.mu.Lock()
	queue := j.queue
	j.queue = nil
	j.mu.Unlock()

	for i, p := range queue {
		if j.supersededAt(queue, i) {
			continue
		}
		http.SetCookie(w, p.cookie)
	}
}

func (j *Jar) supersededAt(queue []pending, i int) bool {
	for _, later := range queue[i+1:] {
		if later.cookie.Name == queue[i].cookie.Name {
			return true
		}
	}
	return false
}

func (j *Jar) push(p pending) {
	j.mu.Lock()
	j.queue = append(j.queue, p)
	j.mu.Unlock()
}

// lookup returns the latest queued change for name. Callers hold j.mu.
func (j *Jar) lookup(name string) (pending, bool) {
	for i := len(j.queue) - 1; i >= 0; i-- {
		if j.queue[i].cookie.Name == name {
			return j.queue[i], true
		}
	}
	return pending{}, false
}
