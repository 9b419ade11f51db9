package mocks

import "roombooker/infras/otel"

type scopeImpl struct{}

// AddEvent implements otel.Scope.
func (s *scopeImpl) AddEvent(string) {}

// End implements otel.Scope.
func (s *scopeImpl) End() {}

// SetAttribute implements otel.Scope.
func (s *scopeImpl) SetAttribute(string, any) {}

// SetAttributes implements otel.Scope.
func (s *scopeImpl) SetAttributes(map[string]any) {}

// TraceError implements otel.Scope.
func (s *scopeImpl) TraceError(error) {}

// TraceIfError implements otel.Scope.
func (s *scopeImpl) TraceIfError(error) {}

func NewScope() otel.Scope {
	return &scopeImpl{}
}
