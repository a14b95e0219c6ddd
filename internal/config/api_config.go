package config

type APIConfig interface {
	GetAPIBaseURL() string
}

type API struct{}

var _ APIConfig = API{}

const apiBaseURLVar = "API_BASE_URL"

// GetAPIBaseURL returns the base URL of the remote product-manager API.
// One base URL per build; every catalog and login request is resolved
// against it.
func (API) GetAPIBaseURL() string {
	return GetEnv(apiBaseURLVar, "https://app-productmanager-prod.azurewebsites.net")
}
