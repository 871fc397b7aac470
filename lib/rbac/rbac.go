package rbac

import (
	"hr-admin-backend/models"
	"regexp"
	"slices"
	"strings"

	"github.com/pkg/errors"
)

type Provider interface {
	GetRuleFunc(method, path string) (models.RbacFunc, bool)
	RegisterRule(module models.Module, permission models.Permission, roles []models.UserRole, swaggerPattern string, handler models.RbacFunc) error
	GetPermissions(role models.UserRole) map[models.Module][]models.Permission
}

var Instance Provider

func NewHandler() {
	i := &impl{
		rules:       map[HTTPMethod]*PathRule{},
		permissions: map[models.UserRole]map[models.Module][]models.Permission{},
	}
	Instance = i
	i.initRules()
}

type impl struct {
	rules       map[HTTPMethod]*PathRule
	permissions map[models.UserRole]map[models.Module][]models.Permission
}

func (i *impl) GetRuleFunc(method, path string) (models.RbacFunc, bool) {
	normalizedPath := normalizePath(path)
	httpMethod := HTTPMethod(strings.ToUpper(method))

	if pathRule, exists := i.rules[httpMethod]; exists {
		if handler, found := i.findInPathRule(pathRule, normalizedPath); found {
			return handler, true
		}
	}

	return nil, false
}

func (i *impl) RegisterRule(module models.Module, permission models.Permission, roles []models.UserRole, swaggerPattern string, handler models.RbacFunc) error {
	path, methods, err := parseSwaggerPattern(swaggerPattern)
	if err != nil {
		return err
	}
	if handler == nil {
		handler = AllowByRoleFunc(roles)
	}
	var pattern *regexp.Regexp
	if !isExactPath(path) {
		if pattern = pathToRegex(path); pattern == nil {
			return errors.Errorf("некорректный шаблон пути (%v)", swaggerPattern)
		}
	}

	i.addPermission(module, permission, roles)
	for _, method := range methods {
		pathRule, exists := i.rules[method]
		if !exists {
			pathRule = &PathRule{
				Exact:    make(map[string]models.RbacFunc),
				Patterns: []PatternRule{},
			}
			i.rules[method] = pathRule
		}
		if pattern == nil {
			pathRule.Exact[path] = handler
			continue
		}
		pathRule.Patterns = append(pathRule.Patterns, PatternRule{
			Pattern: pattern,
			Handler: handler,
		})
	}
	return nil
}

// addPermission права роли по модулям для фронта
func (i *impl) addPermission(module models.Module, permission models.Permission, roles []models.UserRole) {
	for _, role := range roles {
		if _, ok := i.permissions[role]; !ok {
			i.permissions[role] = map[models.Module][]models.Permission{}
		}
		permissions := i.permissions[role][module]
		if slices.Contains(permissions, permission) {
			continue
		}
		i.permissions[role][module] = append(permissions, permission)
	}
}

func (i *impl) GetPermissions(role models.UserRole) map[models.Module][]models.Permission {
	return i.permissions[role]
}

func isExactPath(path string) bool {
	return !strings.Contains(path, "{")
}

func pathToRegex(path string) *regexp.Regexp {
	pattern := regexp.QuoteMeta(path)
	pattern = strings.ReplaceAll(pattern, "\\{", "{")
	pattern = strings.ReplaceAll(pattern, "\\}", "}")

	pattern = regexp.MustCompile(`\{[^}]+?\}`).ReplaceAllString(pattern, `([^/]+)`)

	pattern = strings.ReplaceAll(pattern, `\*`, `.*?`)
	pattern = "^" + pattern + "$"

	regex, err := regexp.Compile(pattern)
	if err != nil {
		return nil
	}

	return regex
}

func (i *impl) findInPathRule(pathRule *PathRule, path string) (models.RbacFunc, bool) {
	if pathRule == nil {
		return nil, false
	}

	if handler, exists := pathRule.Exact[path]; exists {
		return handler, true
	}

	for _, patternRule := range pathRule.Patterns {
		if patternRule.Pattern.MatchString(path) {
			return patternRule.Handler, true
		}
	}

	return nil, false
}

func AllowFunc() models.RbacFunc {
	return func(tenantID, userID uint, role models.UserRole, uri string) bool {
		return true
	}
}

func AllowByRoleFunc(accessRoles []models.UserRole) models.RbacFunc {
	allowMap := map[models.UserRole]bool{}
	for _, role := range accessRoles {
		allowMap[role] = true
	}
	return func(tenantID, userID uint, role models.UserRole, uri string) bool {
		return allowMap[role]
	}
}

// parseSwaggerPattern разбирает "/web/assets/{id} [put,patch]"
func parseSwaggerPattern(pattern string) (path string, methods []HTTPMethod, err error) {
	pattern = strings.TrimSpace(pattern)
	bracketStart := strings.LastIndex(pattern, "[")
	bracketEnd := strings.LastIndex(pattern, "]")
	if bracketStart == -1 || bracketEnd == -1 || bracketEnd < bracketStart {
		return "", nil, errors.Errorf("в шаблоне не указан метод (%v)", pattern)
	}
	for _, item := range strings.Split(pattern[bracketStart+1:bracketEnd], ",") {
		method := HTTPMethod(strings.ToUpper(strings.TrimSpace(item)))
		if !method.IsValid() {
			return "", nil, errors.Errorf("неизвестный метод %q в шаблоне (%v)", item, pattern)
		}
		methods = append(methods, method)
	}
	return normalizePath(strings.TrimSpace(pattern[:bracketStart])), methods, nil
}

func normalizePath(path string) string {
	if path == "" {
		return "/"
	}

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	for strings.Contains(path, "//") {
		path = strings.ReplaceAll(path, "//", "/")
	}

	if len(path) > 1 && strings.HasSuffix(path, "/") {
		path = path[:len(path)-1]
	}

	return path
}
