package rbac

import (
	"hr-admin-backend/models"
	"regexp"
)

type MethodRule struct {
	Method  HTTPMethod
	Handler models.RbacFunc
}

type HTTPMethod string

const (
	GET    HTTPMethod = "GET"
	POST   HTTPMethod = "POST"
	PUT    HTTPMethod = "PUT"
	DELETE HTTPMethod = "DELETE"
	PATCH  HTTPMethod = "PATCH"
)

func (m HTTPMethod) IsValid() bool {
	switch m {
	case GET, POST, PUT, DELETE, PATCH:
		return true
	}
	return false
}

// PathRule правила одного метода: сначала точные пути, затем шаблоны с параметрами
type PathRule struct {
	Exact    map[string]models.RbacFunc
	Patterns []PatternRule
}

type PatternRule struct {
	Pattern *regexp.Regexp
	Handler models.RbacFunc
}
