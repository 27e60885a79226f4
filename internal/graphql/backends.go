package graphql

import (
	"log"

	"github.com/jamesprial/confcms-mcp/internal/config"
)

// ContentHubTokenHeader carries the Content Hub read-only API key.
const ContentHubTokenHeader = "X-GQL-Token"

// NewBackends builds one Client per backend from cfg, keyed by BackendDatoCMS
// and BackendContentHub. A backend whose client cannot be built is logged and
// replaced by Unconfigured, so only the operations that need it fail.
func NewBackends(cfg *config.Config, opts ...Option) map[string]Client {
	build := func(name string, gc config.GraphQLConfig, auth Auth) Client {
		c, err := NewHTTPClient(gc, auth, opts...)
		if err != nil {
			log.Printf("warning: %s backend unavailable: %v", name, err)
			return Unconfigured{}
		}
		return c
	}
	return map[string]Client{
		BackendDatoCMS:    build(BackendDatoCMS, cfg.DatoCMS, BearerAuth()),
		BackendContentHub: build(BackendContentHub, cfg.ContentHub, HeaderAuth(ContentHubTokenHeader)),
	}
}
