package routes

import (
	"net/http"

	"siopa/auth"
	"siopa/cart"
	"siopa/favourites"
	"siopa/middleware"
	"siopa/products"
	"siopa/purchases"
	"siopa/ratelim"
	"siopa/search"
	"siopa/users"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/productpic/*filepath", http.Dir("static/productpic"))
	router.ServeFiles("/static/userpic/*filepath", http.Dir("static/userpic"))
}

func AddAuthRoutes(router *httprouter.Router) {
	router.POST("/api/auth/register", ratelim.RateLimit(auth.Register))
	router.POST("/api/auth/login", ratelim.RateLimit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.LogoutUser))
	router.POST("/api/auth/token/refresh", ratelim.RateLimit(auth.RefreshToken))
}

func AddProductRoutes(router *httprouter.Router) {
	router.GET("/api/products", middleware.OptionalAuth(products.GetProducts))
	router.GET("/api/products/:productid", middleware.OptionalAuth(products.GetProduct))
	router.POST("/api/products", middleware.RequireRole("admin", products.CreateProduct))
	router.PUT("/api/products/:productid", middleware.RequireRole("admin", products.UpdateProduct))
	router.DELETE("/api/products/:productid", middleware.RequireRole("admin", products.DeleteProduct))
	router.GET("/api/products/:productid/updates", products.StockUpdates)
}

func AddCartRoutes(router *httprouter.Router) {
	router.GET("/api/cart", middleware.Authenticate(cart.GetCart))
	router.POST("/api/cart", ratelim.RateLimit(middleware.Authenticate(cart.AddToCart)))
	router.PUT("/api/cart", middleware.Authenticate(cart.UpdateCart))
	router.DELETE("/api/cart/:productid", middleware.Authenticate(cart.RemoveFromCart))
}

func AddFavouritesRoutes(router *httprouter.Router) {
	router.GET("/api/favourites", middleware.Authenticate(favourites.GetFavourites))
	router.POST("/api/favourites/:productid", middleware.Authenticate(favourites.AddFavourite))
	router.DELETE("/api/favourites/:productid", middleware.Authenticate(favourites.RemoveFavourite))
}

func AddPurchaseRoutes(router *httprouter.Router) {
	router.GET("/api/purchases", middleware.Authenticate(purchases.GetPurchases))
	router.POST("/api/purchases/checkout", ratelim.RateLimit(middleware.Authenticate(purchases.Checkout)))
	router.GET("/api/purchases/:orderid/receipt", middleware.Authenticate(purchases.PrintReceipt))
}

func AddUserRoutes(router *httprouter.Router) {
	router.GET("/api/users", middleware.RequireRole("admin", users.ListUsers))
	router.GET("/api/users/:userid", middleware.Authenticate(users.GetProfile))
	router.PUT("/api/users/:userid", middleware.Authenticate(users.EditProfile))
}

func AddSearchRoutes(router *httprouter.Router) {
	router.POST("/api/catalog/filter", search.FilterProducts)
	router.GET("/api/catalog/facets", search.GetFacets)
	router.GET("/api/search/products", ratelim.RateLimit(search.SearchProducts))
	router.GET("/api/search/suggest", ratelim.RateLimit(search.Suggest))
	router.GET("/api/search/users", middleware.RequireRole("admin", search.SearchUsers))
}
