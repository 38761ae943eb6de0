// admin.go - privacy-conscious admin system: visitor tracking and caption render stats
package main

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

// Privacy-conscious visitor tracking struct
type VisitorMetric struct {
	ID        int       `json:"id"`
	HashedIP  string    `json:"hashed_ip"` // Hashed instead of raw IP for privacy
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

// RenderStat describes one caption render. The image itself is never stored.
type RenderStat struct {
	ID           int       `json:"id"`
	Width        int       `json:"width"`
	Height       int       `json:"height"`
	LineCount    int       `json:"line_count"`
	BandHeight   int       `json:"band_height"`
	FontSize     int       `json:"font_size"`
	SourceFormat string    `json:"source_format"`
	Downloaded   bool      `json:"downloaded"`
	CreatedAt    time.Time `json:"created_at"`
}

type AdminStats struct {
	TotalVisitors    int64           `json:"total_visitors"`
	UniqueVisitors   int64           `json:"unique_visitors"`
	TotalRenders     int64           `json:"total_renders"`
	TotalDownloads   int64           `json:"total_downloads"`
	RecentRenders    []RenderStat    `json:"recent_renders"`
	RecentVisitors   []VisitorMetric `json:"recent_visitors"`
	VisitorsToday    int64           `json:"visitors_today"`
	VisitorsThisWeek int64           `json:"visitors_this_week"`
	RendersToday     int64           `json:"renders_today"`
}

var adminToken string
var hashingSalt string

// Initialize admin system with privacy considerations
func initAdminToken() {
	adminToken = generateAdminToken()
	hashingSalt = generateAdminToken() // Use for IP hashing

	log.Info("Admin access available at: /admin/login")
	if gin.Mode() == gin.DebugMode {
		log.Debugf("Admin token (dev only): %s", adminToken)
	}

	log.Info("Privacy: Visitor tracking enabled with hashed IP addresses")
}

func generateAdminToken() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		log.Fatal("Failed to generate admin token", "err", err)
	}
	return hex.EncodeToString(bytes)
}

// Hash IP address for privacy compliance (consistent per IP)
func hashIP(ip string) string {
	hash := sha256.New()
	hash.Write([]byte(ip + hashingSalt))
	return hex.EncodeToString(hash.Sum(nil))[:16]
}

// Middleware to check admin authentication
func adminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("admin_token")
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(adminToken)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// Privacy-conscious visitor tracking middleware
func visitorTrackingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip tracking for static files, admin pages and caption tool traffic
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/static/") ||
			strings.HasPrefix(path, "/admin/") ||
			strings.HasPrefix(path, "/caption/") ||
			strings.HasPrefix(path, "/favicon") ||
			strings.HasPrefix(path, "/privacy") {
			c.Next()
			return
		}

		// Respect Do Not Track header
		if c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		go trackVisitorPrivacy(c.ClientIP(), c.GetHeader("User-Agent"), path)
		c.Next()
	}
}

// Track visitor with privacy protections
func trackVisitorPrivacy(ip, userAgent, path string) {
	_, err := db.Exec(`
		INSERT INTO visitors (hashed_ip, user_agent, path, timestamp)
		VALUES (?, ?, ?, ?)
	`, hashIP(ip), userAgent, path, time.Now().UTC())

	if err != nil {
		log.Error("Error recording visitor", "err", err)
	}
}

// Record a caption render; only metadata is kept
func recordRender(stat RenderStat) {
	_, err := db.Exec(`
		INSERT INTO renders (width, height, line_count, band_height, font_size, source_format, downloaded, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, stat.Width, stat.Height, stat.LineCount, stat.BandHeight, stat.FontSize, stat.SourceFormat, stat.Downloaded, time.Now().UTC())

	if err != nil {
		log.Error("Error recording render", "err", err)
	}
}

// Kick off retention cleanup in the background
func initVisitorTracking() {
	go cleanupOldVisitorData()
	log.Info("Privacy-conscious visitor tracking initialized")
}

// Cleanup old visitor data for privacy compliance
func cleanupOldVisitorData() {
	result, err := db.Exec(`
		DELETE FROM visitors
		WHERE timestamp < datetime('now', '-12 months')
	`)
	if err != nil {
		log.Error("Error cleaning up old visitor data", "err", err)
		return
	}

	rowsDeleted, _ := result.RowsAffected()
	if rowsDeleted > 0 {
		log.Infof("Privacy cleanup: Removed %d visitor records older than 12 months", rowsDeleted)
	}
}

func queryRenders(limit int) ([]RenderStat, error) {
	rows, err := db.Query(`
		SELECT id, width, height, line_count, band_height, font_size, COALESCE(source_format, ''), downloaded, created_at
		FROM renders
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var renders []RenderStat
	for rows.Next() {
		var r RenderStat
		err := rows.Scan(&r.ID, &r.Width, &r.Height, &r.LineCount, &r.BandHeight, &r.FontSize, &r.SourceFormat, &r.Downloaded, &r.CreatedAt)
		if err != nil {
			continue
		}
		renders = append(renders, r)
	}
	return renders, rows.Err()
}

func queryVisitors(limit int) ([]VisitorMetric, error) {
	rows, err := db.Query(`
		SELECT id, hashed_ip, user_agent, path, timestamp
		FROM visitors
		ORDER BY timestamp DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var visitors []VisitorMetric
	for rows.Next() {
		var v VisitorMetric
		err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &v.Timestamp)
		if err != nil {
			continue
		}
		visitors = append(visitors, v)
	}
	return visitors, rows.Err()
}

// Get comprehensive admin statistics
func getAdminStats() (*AdminStats, error) {
	stats := &AdminStats{}

	counters := []struct {
		query string
		dst   *int64
	}{
		{"SELECT COUNT(*) FROM visitors", &stats.TotalVisitors},
		{"SELECT COUNT(DISTINCT hashed_ip) FROM visitors", &stats.UniqueVisitors},
		{"SELECT COUNT(*) FROM renders", &stats.TotalRenders},
		{"SELECT COUNT(*) FROM renders WHERE downloaded = 1", &stats.TotalDownloads},
		{"SELECT COUNT(*) FROM visitors WHERE DATE(timestamp) = DATE('now')", &stats.VisitorsToday},
		{"SELECT COUNT(*) FROM visitors WHERE timestamp >= datetime('now', '-7 days')", &stats.VisitorsThisWeek},
		{"SELECT COUNT(*) FROM renders WHERE DATE(created_at) = DATE('now')", &stats.RendersToday},
	}
	for _, counter := range counters {
		if err := db.QueryRow(counter.query).Scan(counter.dst); err != nil {
			return nil, err
		}
	}

	var err error
	if stats.RecentRenders, err = queryRenders(10); err != nil {
		return nil, err
	}
	if stats.RecentVisitors, err = queryVisitors(50); err != nil {
		return nil, err
	}
	return stats, nil
}

// Credentials from config, with development defaults
func adminCredentials() (string, string) {
	username, password := cfg.Admin.Username, cfg.Admin.Password
	if username == "" {
		username = "admin"
		if gin.Mode() == gin.DebugMode {
			log.Warn("Using default admin username. Set ADMIN_USERNAME environment variable.")
		}
	}
	if password == "" {
		password = "admin123"
		if gin.Mode() == gin.DebugMode {
			log.Warn("Using default admin password. Set ADMIN_PASSWORD environment variable.")
		}
	}
	return username, password
}

// Setup all admin routes
func setupAdminRoutes(r *gin.Engine) {
	// Privacy policy route
	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{
			"title": "Privacy Policy",
		})
	})

	// Admin login page
	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{
			"title": "Admin Login",
		})
	})

	// Admin login handler
	r.POST("/admin/login", func(c *gin.Context) {
		username := c.PostForm("username")
		password := c.PostForm("password")
		adminUsername, adminPassword := adminCredentials()

		userOK := subtle.ConstantTimeCompare([]byte(username), []byte(adminUsername)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(password), []byte(adminPassword)) == 1
		if userOK && passOK {
			// Secure cookie (24 hours)
			c.SetCookie("admin_token", adminToken, 3600*24, "/admin", "", false, true)
			log.Info("Admin login successful", "from", hashIP(c.ClientIP()))
			c.Redirect(http.StatusFound, "/admin/dashboard")
		} else {
			log.Warn("Failed admin login attempt", "from", hashIP(c.ClientIP()))
			c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
				"title": "Admin Login",
				"error": "Invalid credentials",
			})
		}
	})

	// Admin logout
	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie("admin_token", "", -1, "/admin", "", false, true)
		log.Info("Admin logout", "from", hashIP(c.ClientIP()))
		c.Redirect(http.StatusFound, "/admin/login")
	})

	// Protected admin routes group
	adminGroup := r.Group("/admin")
	adminGroup.Use(adminAuthMiddleware())

	adminGroup.GET("/dashboard", func(c *gin.Context) {
		stats, err := getAdminStats()
		if err != nil {
			log.Error("Error loading admin stats", "err", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load statistics",
			})
			return
		}

		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
			"stats": stats,
		})
	})

	// Admin API endpoints for HTMX/AJAX
	adminGroup.GET("/api/stats", func(c *gin.Context) {
		stats, err := getAdminStats()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	adminGroup.GET("/renders", func(c *gin.Context) {
		renders, err := queryRenders(200)
		if err != nil {
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load renders",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-renders.html", gin.H{
			"renders": renders,
		})
	})

	adminGroup.GET("/visitors", func(c *gin.Context) {
		visitors, err := queryVisitors(200)
		if err != nil {
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load visitors",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-visitors.html", gin.H{
			"visitors": visitors,
		})
	})

	// Drop render history
	adminGroup.DELETE("/renders", func(c *gin.Context) {
		result, err := db.Exec("DELETE FROM renders")
		if err != nil {
			log.Error("Error clearing renders", "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear renders"})
			return
		}
		n, _ := result.RowsAffected()
		log.Info("Render history cleared", "rows", n, "by", hashIP(c.ClientIP()))
		c.JSON(http.StatusOK, gin.H{"message": "Render history cleared", "deleted": n})
	})

	// Privacy compliance endpoint
	adminGroup.POST("/privacy/delete-visitor-data", func(c *gin.Context) {
		go cleanupOldVisitorData()
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup initiated"})
	})

	// Admin statistics export (for backups or analysis)
	adminGroup.GET("/export/stats", func(c *gin.Context) {
		stats, err := getAdminStats()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		log.Info("Admin stats exported", "by", hashIP(c.ClientIP()))
		c.JSON(http.StatusOK, stats)
	})
}
