package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"moviechamp/src/config"
	"moviechamp/src/middlewares"
	admin "moviechamp/src/modules/admin/controllers"
	catalog "moviechamp/src/modules/catalog/controllers"
	files "moviechamp/src/modules/files/controllers"
	mylist "moviechamp/src/modules/mylist/controllers"
	payments "moviechamp/src/modules/payments/controllers"
	search "moviechamp/src/modules/search/controllers"
	users "moviechamp/src/modules/users/controllers"
	watchhistory "moviechamp/src/modules/watchhistory/controllers"
)

func RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/readyz", func(c *gin.Context) {
		if config.CheckConnection() {
			c.JSON(http.StatusOK, gin.H{"status": "ready"})
		} else {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		}
	})

	auth := middlewares.RequireAuth()
	adminOnly := middlewares.RequireAdmin()

	// Auth
	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/register", users.Register)
		authRoutes.POST("/login", users.Login)
		authRoutes.POST("/refresh", users.Refresh)
		authRoutes.POST("/logout", users.Logout)
		authRoutes.POST("/verify-email", users.VerifyEmail)
		authRoutes.POST("/resend-verification", users.ResendVerification)
		authRoutes.POST("/forgot-password", users.ForgotPassword)
		authRoutes.POST("/reset-password", users.ResetPassword)
	}

	// Account (self service)
	accountRoutes := api.Group("/account", auth)
	{
		accountRoutes.GET("/me", users.Me)
		accountRoutes.PUT("/profile", users.UpdateProfile)
		accountRoutes.PUT("/password", users.ChangePassword)
		accountRoutes.DELETE("", users.DeleteAccount)
		accountRoutes.GET("/statistics", users.Statistics)
	}

	// Genres
	genreRoutes := api.Group("/genres")
	{
		genreRoutes.GET("", catalog.ListGenres)
		genreRoutes.GET("/:id", catalog.GetGenre)
		genreRoutes.GET("/slug/:slug", catalog.GetGenreBySlug)
		genreRoutes.POST("", auth, adminOnly, catalog.CreateGenre)
		genreRoutes.PUT("/:id", auth, adminOnly, catalog.UpdateGenre)
		genreRoutes.DELETE("/:id", auth, adminOnly, catalog.DeleteGenre)
	}

	// VJs
	vjRoutes := api.Group("/vjs")
	{
		vjRoutes.GET("", catalog.ListVJs)
		vjRoutes.GET("/:id", catalog.GetVJ)
		vjRoutes.GET("/name/:name", catalog.GetVJByName)
		vjRoutes.POST("", auth, adminOnly, catalog.CreateVJ)
		vjRoutes.PUT("/:id", auth, adminOnly, catalog.UpdateVJ)
		vjRoutes.DELETE("/:id", auth, adminOnly, catalog.DeleteVJ)
	}

	// Release years
	yearRoutes := api.Group("/release-years")
	{
		yearRoutes.GET("", catalog.ListReleaseYears)
		yearRoutes.GET("/:id", catalog.GetReleaseYear)
		yearRoutes.GET("/value/:value", catalog.GetReleaseYearByValue)
		yearRoutes.POST("", auth, adminOnly, catalog.CreateReleaseYear)
		yearRoutes.PUT("/:id", auth, adminOnly, catalog.UpdateReleaseYear)
		yearRoutes.DELETE("/:id", auth, adminOnly, catalog.DeleteReleaseYear)
	}

	// Movies
	movieRoutes := api.Group("/movies")
	{
		movieRoutes.GET("", catalog.ListMovies)
		movieRoutes.GET("/trending", catalog.TrendingMovies)
		movieRoutes.GET("/coming-soon", catalog.ComingSoonMovies)
		movieRoutes.GET("/:id", catalog.GetMovie)
		movieRoutes.GET("/slug/:slug", catalog.GetMovieBySlug)
		movieRoutes.POST("/:id/views", catalog.IncrementMovieViews)
		movieRoutes.POST("", auth, adminOnly, catalog.CreateMovie)
		movieRoutes.PUT("/:id", auth, adminOnly, catalog.UpdateMovie)
		movieRoutes.DELETE("/:id", auth, adminOnly, catalog.DeleteMovie)
	}

	// Series, seasons nested by series
	seriesRoutes := api.Group("/series")
	{
		seriesRoutes.GET("", catalog.ListSeries)
		seriesRoutes.GET("/trending", catalog.TrendingSeries)
		seriesRoutes.GET("/coming-soon", catalog.ComingSoonSeries)
		seriesRoutes.GET("/:id", catalog.GetSeries)
		seriesRoutes.GET("/slug/:slug", catalog.GetSeriesBySlug)
		seriesRoutes.POST("/:id/views", catalog.IncrementSeriesViews)
		seriesRoutes.POST("", auth, adminOnly, catalog.CreateSeries)
		seriesRoutes.PUT("/:id", auth, adminOnly, catalog.UpdateSeries)
		seriesRoutes.DELETE("/:id", auth, adminOnly, catalog.DeleteSeries)
	}

	// Seasons nested under their series
	api.GET("/series/:id/seasons", catalog.ListSeasons)
	api.POST("/series/:id/seasons", auth, adminOnly, catalog.CreateSeason)
	seasonRoutes := api.Group("/seasons")
	{
		seasonRoutes.GET("/:id", catalog.GetSeason)
		seasonRoutes.PUT("/:id", auth, adminOnly, catalog.UpdateSeason)
		seasonRoutes.DELETE("/:id", auth, adminOnly, catalog.DeleteSeason)
		seasonRoutes.GET("/:id/episodes", catalog.ListEpisodes)
		seasonRoutes.POST("/:id/episodes", auth, adminOnly, catalog.CreateEpisode)
	}

	// Episodes and sequence navigation
	episodeRoutes := api.Group("/episodes")
	{
		episodeRoutes.GET("/:id", catalog.GetEpisode)
		episodeRoutes.GET("/:id/next", catalog.NextEpisode)
		episodeRoutes.GET("/:id/previous", catalog.PreviousEpisode)
		episodeRoutes.POST("/:id/views", catalog.IncrementEpisodeViews)
		episodeRoutes.PUT("/:id", auth, adminOnly, catalog.UpdateEpisode)
		episodeRoutes.DELETE("/:id", auth, adminOnly, catalog.DeleteEpisode)
	}

	// My list
	myListRoutes := api.Group("/my-list", auth)
	{
		myListRoutes.GET("", mylist.GetList)
		myListRoutes.POST("", mylist.AddItem)
		myListRoutes.GET("/check", mylist.CheckItem)
		myListRoutes.GET("/stats", mylist.Stats)
		myListRoutes.DELETE("/movies/:movieId", mylist.RemoveMovie)
		myListRoutes.DELETE("/series/:seriesId", mylist.RemoveSeries)
	}

	// Watch history
	watchRoutes := api.Group("/watch-history", auth)
	{
		watchRoutes.GET("", watchhistory.History)
		watchRoutes.POST("/progress", watchhistory.UpdateProgress)
		watchRoutes.GET("/continue-watching", watchhistory.ContinueWatching)
		watchRoutes.DELETE("/:movieId", watchhistory.DeleteEntry)
	}

	// Search
	api.GET("/search", search.Global)

	// Payments
	paymentRoutes := api.Group("/payments", auth)
	{
		paymentRoutes.GET("", payments.ListPayments)
		paymentRoutes.POST("/mobile-money", payments.InitiateMobileMoney)
		paymentRoutes.POST("/card", payments.InitiateCard)
		paymentRoutes.POST("/paypal", payments.InitiatePayPal)
		paymentRoutes.GET("/:id", payments.GetPayment)
		paymentRoutes.POST("/:id/verify", payments.VerifyPayment)
	}
	subscriptionRoutes := api.Group("/subscriptions", auth)
	{
		subscriptionRoutes.GET("/current", payments.CurrentSubscription)
		subscriptionRoutes.POST("/:id/cancel", payments.CancelSubscription)
	}

	// Admin
	adminRoutes := api.Group("/admin", auth, adminOnly)
	{
		adminRoutes.GET("/users", admin.ListUsers)
		adminRoutes.GET("/users/:id", admin.GetUser)
		adminRoutes.PUT("/users/:id", admin.UpdateUser)
		adminRoutes.DELETE("/users/:id", admin.DeleteUser)
		adminRoutes.GET("/payments", admin.ListPayments)
		adminRoutes.GET("/subscriptions", admin.ListSubscriptions)
		adminRoutes.POST("/media", files.UploadMedia)
		adminRoutes.GET("/settings", admin.GetSettings)
		adminRoutes.PUT("/settings/general", admin.UpdateGeneralSettings)
		adminRoutes.PUT("/settings/payment", admin.UpdatePaymentSettings)

		dashboard := adminRoutes.Group("/dashboard")
		{
			dashboard.GET("/stats", admin.DashboardStats)
			dashboard.GET("/revenue", admin.RevenueAnalytics)
			dashboard.GET("/users", admin.UserAnalytics)
			dashboard.GET("/content", admin.ContentAnalytics)
			dashboard.GET("/activity", admin.RecentActivity)
		}
	}

	// Static proxy for the object store; mirrored poster paths point here.
	router.GET("/static/*filepath", files.ServeStatic)
}
