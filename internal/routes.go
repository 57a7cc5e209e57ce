package internal

import (
	"net/http"
	"warboard/internal/controllers"
	"warboard/internal/providers"
)

func InitRoutes(war *controllers.WarController, board *controllers.ScoreboardController, search *controllers.SearchController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/clan", http.HandlerFunc(war.Clan))
	routers.Get("/clan/fragments", http.HandlerFunc(war.Fragments))
	routers.Get("/war", http.HandlerFunc(war.War))
	routers.Get("/search", http.HandlerFunc(search.Search))
	routers.Post("/scoreboard/open", http.HandlerFunc(board.Open))
	routers.Post("/scoreboard/close", http.HandlerFunc(board.Close))
	routers.Post("/back", http.HandlerFunc(board.Back))
	routers.Post("/logo", http.HandlerFunc(board.Logo))
	return routers
}
