package session

// Session is a bearer token issued for one mailbox. It is never persisted.
type Session struct {
	Address string `json:"address"`
	Token   string `json:"token"`
}

func (s *Session) Valid() bool {
	return s != nil && s.Token != ""
}
