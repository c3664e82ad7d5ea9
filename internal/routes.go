package internal

import (
	"net/http"
	"sld/internal/controllers"
	"sld/internal/providers"
)

func InitRoutes(apiController *controllers.ApiController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/profiles", http.HandlerFunc(apiController.GetProfiles))
	routers.Get("/groups", http.HandlerFunc(apiController.GetGroups))
	return routers
}
