package internal

import (
	"net/http"

	"codetrack/internal/controllers"
	"codetrack/internal/providers"
)

func InitRoutes(apiController *controllers.ApiController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/refresh", http.HandlerFunc(apiController.Refresh))
	routers.Get("/summary", http.HandlerFunc(apiController.Summary))
	routers.Get("/history", http.HandlerFunc(apiController.History))
	routers.Delete("/history", http.HandlerFunc(apiController.ClearHistory))
	routers.Get("/config", http.HandlerFunc(apiController.GetConfig))
	routers.Post("/config", http.HandlerFunc(apiController.SetConfig))
	return routers
}
