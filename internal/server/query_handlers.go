package server

import "solidity-lsp/internal/query"

func (s *Server) handleDefinition(params map[string]interface{}) (interface{}, error) {
	s.mu.Lock()
	basePath, driver := s.basePath, s.driver
	s.mu.Unlock()
	return query.Definition(driver, basePath, params)
}

func (s *Server) handleImplementation(params map[string]interface{}) (interface{}, error) {
	s.mu.Lock()
	basePath, driver := s.basePath, s.driver
	s.mu.Unlock()
	return query.Implementation(driver, basePath, params)
}

func (s *Server) handleReferences(params map[string]interface{}) (interface{}, error) {
	s.mu.Lock()
	basePath, driver := s.basePath, s.driver
	s.mu.Unlock()
	return query.References(driver, basePath, params, s.documents.Paths())
}

func (s *Server) handleDocumentHighlight(params map[string]interface{}) (interface{}, error) {
	s.mu.Lock()
	basePath, driver := s.basePath, s.driver
	s.mu.Unlock()
	return query.Highlight(driver, basePath, params)
}

func (s *Server) handleHover(params map[string]interface{}) (interface{}, error) {
	s.mu.Lock()
	basePath, driver := s.basePath, s.driver
	s.mu.Unlock()
	hover, err := query.Hover(driver, basePath, params)
	if err != nil {
		return nil, err
	}
	if hover == nil {
		return nil, nil
	}
	return hover, nil
}
