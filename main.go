package main

import (
	"errors"
	"fmt"
	"net/http"
	"net/smtp"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"

	"github.com/Zachkp/portfolio/internal/config"
)

var cfg = config.DefaultConfig()

func main() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", "err", err)
	}

	if err := initDB(cfg.DatabasePath); err != nil {
		log.Fatal("Failed to initialize database", "err", err)
	}
	defer db.Close()

	initAdminToken()
	initVisitorTracking()

	r := setupRouter()
	log.Info("Portfolio listening", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server stopped", "err", err)
	}
}

func setupRouter() *gin.Engine {
	r := gin.Default()
	r.MaxMultipartMemory = cfg.MaxUploadBytes()
	r.LoadHTMLGlob("templates/*")

	r.Static("/static", "./static")
	r.Use(visitorTrackingMiddleware())

	// Home page route
	r.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", gin.H{
			"tagline":         Tagline,
			"aboutMeContent":  AboutMe,
			"navigation":      Navigation,
			"highlights":      Highlights,
			"projects":        Projects,
			"skillCategories": SkillCategories,
			"blogPosts":       BlogPosts,
			"contactMethods":  ContactMethods,
		})
	})

	// HTMX Contact form endpoint - returns just the form HTML
	r.GET("/contact-form", func(c *gin.Context) {
		c.HTML(http.StatusOK, "contact.html", gin.H{
			"title": "Contact Me",
		})
	})

	// Handle contact form submission with HTMX
	r.POST("/contact", func(c *gin.Context) {
		name := c.PostForm("fullName")
		email := c.PostForm("email")
		message := c.PostForm("message")

		if err := sendContactEmail(name, email, message); err != nil {
			c.HTML(http.StatusOK, "contact-error.html", gin.H{
				"error": "Sorry, there was an error sending your message. Please try again later.",
			})
			return
		}

		c.HTML(http.StatusOK, "contact-success.html", gin.H{
			"success": "Thank you for your message! I'll get back to you soon.",
		})
	})

	setupCaptionRoutes(r)
	setupAdminRoutes(r)
	return r
}

// errHeaderInjection rejects contact fields that would break out of their
// mail header.
var errHeaderInjection = errors.New("name and email must be a single line")

func sendContactEmail(name, email, message string) error {
	if strings.ContainsAny(name, "\r\n") || strings.ContainsAny(email, "\r\n") {
		return errHeaderInjection
	}
	smtpCfg := cfg.SMTP
	if !smtpCfg.Configured() {
		return fmt.Errorf("SMTP credentials not configured")
	}
	toEmail := smtpCfg.ToEmail
	if toEmail == "" {
		toEmail = smtpCfg.User
	}

	subject := fmt.Sprintf("Portfolio Contact: %s", name)
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, name, email, message)

	msg := []byte("To: " + toEmail + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + smtpCfg.User + "\r\n" +
		"Reply-To: " + email + "\r\n" +
		"\r\n" +
		body + "\r\n")

	auth := smtp.PlainAuth("", smtpCfg.User, smtpCfg.Pass, smtpCfg.Host)

	err := smtp.SendMail(smtpCfg.Host+":"+smtpCfg.Port, auth, smtpCfg.User, []string{toEmail}, msg)
	if err != nil {
		log.Error("Error sending email", "err", err)
		return err
	}

	log.Info("Email sent", "name", name, "email", email)
	return nil
}
