package google

import (
	"fmt"
	"strings"
)

// Service identifies a Google Workspace service.
type Service string

const (
	ServiceGmail    Service = "gmail"
	ServiceDrive    Service = "drive"
	ServiceCalendar Service = "calendar"
	ServiceDocs     Service = "docs"
	ServiceSheets   Service = "sheets"
	ServiceSlides   Service = "slides"
)

const scopePrefix = "https://www.googleapis.com/auth/"

// scopeCatalog maps each service to the minimal scopes its operations need.
var scopeCatalog = map[Service][]string{
	ServiceGmail: {
		scopePrefix + "gmail.readonly",
		scopePrefix + "gmail.send",
		scopePrefix + "gmail.compose",
		scopePrefix + "gmail.modify",
	},
	ServiceDrive: {
		scopePrefix + "drive",
		scopePrefix + "drive.file",
	},
	ServiceCalendar: {
		scopePrefix + "calendar",
		scopePrefix + "calendar.events",
	},
	ServiceDocs: {
		scopePrefix + "documents",
	},
	ServiceSheets: {
		scopePrefix + "spreadsheets",
	},
	ServiceSlides: {
		scopePrefix + "presentations",
	},
}

// Services returns all known services in catalog order.
func Services() []Service {
	return []Service{ServiceGmail, ServiceDrive, ServiceCalendar, ServiceDocs, ServiceSheets, ServiceSlides}
}

// ServiceNames returns the names of all known services in catalog order.
func ServiceNames() []string {
	services := Services()
	names := make([]string, len(services))
	for i, s := range services {
		names[i] = string(s)
	}
	return names
}

// ParseService converts a service name to a Service.
func ParseService(name string) (Service, error) {
	s := Service(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := scopeCatalog[s]; !ok {
		return "", fmt.Errorf("unknown service %q (available: %s)", name, strings.Join(ServiceNames(), ", "))
	}
	return s, nil
}

// Scopes returns a copy of the scopes for a single service.
func (s Service) Scopes() []string {
	return append([]string(nil), scopeCatalog[s]...)
}

// ScopesFor returns the union of the scopes of the named services,
// deduplicated and in request order.
func ScopesFor(services ...string) ([]string, error) {
	if len(services) == 0 {
		return nil, fmt.Errorf("at least one service is required")
	}

	seen := make(map[string]bool)
	var scopes []string
	for _, name := range services {
		svc, err := ParseService(name)
		if err != nil {
			return nil, err
		}
		for _, scope := range scopeCatalog[svc] {
			if seen[scope] {
				continue
			}
			seen[scope] = true
			scopes = append(scopes, scope)
		}
	}
	return scopes, nil
}
