package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"backend/internal/config"
	"backend/internal/database"
	"backend/internal/handlers"
	"backend/internal/mailer"
	"backend/internal/middleware"
	"backend/internal/models"
	"backend/internal/notifier"
)

func main() {
	cfg := config.Load()

	client, err := database.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(cfg.DBName)
	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureCustomerIndexes(db); err != nil {
		log.Printf("customer index warning: %v", err)
	}
	if err := database.EnsurePickupIndexes(db); err != nil {
		log.Printf("pickup index warning: %v", err)
	}
	if err := database.EnsureActorIndexes(db); err != nil {
		log.Printf("actor index warning: %v", err)
	}

	handlers.SetErrorLogPath(cfg.ErrorLogPath)

	mail := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom)

	hub := notifier.NewHub()
	feed := notifier.NewFeed(db, hub)
	go feed.Watch(context.Background())

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.AllowedOrigin},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"statusCode": 404,
			"message":    "Invalid Endpoint.",
		})
	})

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"statusCode":    200,
			"statusMessage": "You touched WashWithKings base route.",
		})
	})

	ownerOnly := middleware.RequireActor(db, cfg.JWTSecret, models.RoleOwner)
	ownerOrAdmin := middleware.RequireActor(db, cfg.JWTSecret, models.RoleOwner, models.RoleAdmin)

	auth := r.Group("/auth")
	{
		auth.GET("/getAllOwners", handlers.GetAllOwners(db))
		auth.POST("/createOwner", handlers.CreateOwner(db, cfg.JWTSecret, cfg.TokenTTL))
		auth.POST("/loginOwner", handlers.LoginOwner(db, cfg.JWTSecret, cfg.TokenTTL))
		auth.DELETE("/deleteOwner", ownerOnly, handlers.DeleteOwner(db))
		auth.POST("/requestOwnerPasswordReset", handlers.RequestOwnerPasswordReset(db, mail, cfg.OTPTTL))
		auth.POST("/resendOwnerOTP", handlers.ResendOwnerOTP(db, mail, cfg.OTPTTL))
		auth.POST("/resetOwnerPassword", handlers.ResetOwnerPassword(db, mail))

		auth.GET("/getAllAdmins", handlers.GetAllAdmins(db))
		auth.POST("/createAdmin", ownerOnly, handlers.CreateAdmin(db, cfg.JWTSecret, cfg.TokenTTL))
		auth.POST("/loginAdmin", handlers.LoginAdmin(db, cfg.JWTSecret, cfg.TokenTTL))
		auth.DELETE("/deleteAdmin", ownerOnly, handlers.DeleteAdmin(db))
		auth.POST("/requestAdminPasswordReset", handlers.RequestAdminPasswordReset(db, mail, cfg.OTPTTL))
		auth.POST("/resendAdminOTP", handlers.ResendAdminOTP(db, mail, cfg.OTPTTL))
		auth.POST("/resetAdminPassword", handlers.ResetAdminPassword(db, mail))

		auth.GET("/getAllCustomers", handlers.GetAllCustomers(db))
		auth.GET("/getCustomersLength", handlers.GetCustomersLength(db))
		auth.GET("/getAllCustomersByEmail", handlers.GetAllCustomersByEmail(db))
		auth.GET("/getCustomerByID", handlers.GetCustomerByID(db))
		auth.POST("/createCustomer", handlers.CreateCustomer(db))
		auth.PATCH("/editCustomer", ownerOrAdmin, handlers.UpdateCustomer(db))
		auth.DELETE("/deleteCustomer", ownerOnly, handlers.DeleteCustomer(db))
	}

	pickup := r.Group("/pickup")
	{
		pickup.GET("/getAllPickups", handlers.GetAllPickups(db))
		pickup.GET("/getPickupsLength", handlers.GetPickupsLength(db))
		pickup.GET("/getPickupByID", handlers.GetPickupByID(db))
		pickup.POST("/createPickup", handlers.CreatePickup(db, mail, feed))
		pickup.PATCH("/markAsComplete", ownerOrAdmin, handlers.MarkPickupAsComplete(db))
		pickup.DELETE("/deletePickup", ownerOnly, handlers.DeletePickup(db))
	}

	message := r.Group("/message")
	{
		message.GET("/getAllMessages", handlers.GetAllMessages(db))
		message.GET("/getMessagesLength", handlers.GetMessagesLength(db))
		message.GET("/getMessageByID", handlers.GetMessageByID(db))
		message.POST("/createMessage", handlers.CreateMessage(db, feed))
		message.POST("/sendBroadcastMessage", ownerOnly, handlers.SendBroadcastMessage(mail))
		message.DELETE("/deleteMessage/:messageID", ownerOnly, handlers.DeleteMessage(db))
	}

	notification := r.Group("/notification")
	{
		notification.GET("/getAllNotifications", handlers.GetAllNotifications(feed))
		notification.POST("/markNotificationAsRead/:id", handlers.MarkNotificationAsRead(db, feed))
		notification.DELETE("/deleteNotification/:id", ownerOnly, handlers.DeleteNotification(db, feed))
		notification.GET("/feed", notifier.FeedHandler(feed))
	}

	log.Println("listening on port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
