package checker

import "fmt"

// withSession opens a fresh engine session, installs the ignore list into
// it and runs fn with the session visible. The session is destroyed on
// every exit path, including errors from fn; no session id is ever reused
// or leaked across calls.
func (c *Checker) withSession(ignore []string, fn func(SessionID) error) error {
	id, err := c.engine.OpenSession()
	if err != nil {
		return fmt.Errorf("open session: %w", err)
	}
	defer c.engine.CloseSession(id)

	if len(ignore) > 0 {
		c.engine.SetIgnoredWords(id, ignore)
	}
	return fn(id)
}
