package service

// SetMessageCount seeds the signed-in user's counter.
func (s *ChatService) SetMessageCount(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user != nil {
		next := *s.user
		next.MessageCount = n
		s.user = &next
	}
}
