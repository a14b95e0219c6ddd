package config

import "strings"

type Cors struct{}

var _ CorsConfig = Cors{}

const allowedOriginsVar = "ALLOWED_ORIGINS"

func (Cors) GetAllowedOrigins() []string {
	origins := GetEnv(allowedOriginsVar, "")
	if origins == "" {
		return nil
	}
	var allowed []string
	for _, origin := range strings.Split(origins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			allowed = append(allowed, origin)
		}
	}
	return allowed
}

func (Cors) GetAllowedMethods() []string {
	return []string{"GET", "POST", "PUT", "DELETE"}
}

func (Cors) GetAllowedHeaders() []string {
	return []string{"Content-Type", "Authorization"}
}
