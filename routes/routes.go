// routes/routes.go
package routes

import (
	"munchmarket/controllers"
	"munchmarket/middleware"

	"github.com/gorilla/mux"
)

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(router *mux.Router, authController *controllers.AuthController, catalogController *controllers.CatalogController, cartController *controllers.CartController, vendorController *controllers.VendorController, filesController *controllers.FilesController) {
	// Every request gets a session; auth claims attach when present.
	router.Use(middleware.Session)

	// Public routes
	router.HandleFunc("/signup", authController.Signup).Methods("POST")
	router.HandleFunc("/login", authController.Login).Methods("POST")
	router.HandleFunc("/logout", authController.Logout).Methods("POST")
	router.HandleFunc("/reset-password", authController.ResetPassword).Methods("POST")

	// Catalog routes
	router.HandleFunc("/vendors", catalogController.GetVendors).Methods("GET")

	// Cart routes; adds are auth-gated inside the manager, not here
	router.HandleFunc("/cart", cartController.GetCart).Methods("GET")
	router.HandleFunc("/cart/items", cartController.AddItem).Methods("POST")
	router.HandleFunc("/cart/checkout", cartController.Checkout).Methods("POST")

	// Seller routes
	seller := router.PathPrefix("/vendors/me").Subrouter()
	seller.Use(middleware.AuthMiddleware)
	seller.Use(middleware.SellerMiddleware)
	seller.HandleFunc("", vendorController.GetMyProfile).Methods("GET")
	seller.HandleFunc("", vendorController.CreateProfile).Methods("POST")
	seller.HandleFunc("", vendorController.UpdateProfile).Methods("PUT")

	// Uploaded images
	router.HandleFunc("/files/{id}", filesController.Download).Methods("GET")
}
