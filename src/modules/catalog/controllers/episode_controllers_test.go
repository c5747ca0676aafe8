package catalog

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"moviechamp/src/config"
	models "moviechamp/src/modules/catalog/models"
	events "moviechamp/src/services"
	"moviechamp/src/utils"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", utils.NewID())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.RunMigrations(db))

	config.DB = db
	return db
}

func seedSeason(t *testing.T, db *gorm.DB) *models.Season {
	t.Helper()

	vj := models.VJ{Name: "VJ Junior"}
	require.NoError(t, db.Create(&vj).Error)
	genre := models.Genre{Name: "Action", Slug: "action"}
	require.NoError(t, db.Create(&genre).Error)
	year := models.ReleaseYear{Value: 2024}
	require.NoError(t, db.Create(&year).Error)

	series := models.Series{
		Title: "Test Show", Slug: "test-show",
		VJID: vj.ID, GenreID: genre.ID, YearID: year.ID,
	}
	require.NoError(t, db.Create(&series).Error)

	season := models.Season{SeriesID: series.ID, SeasonNumber: 1, Title: "Season 1"}
	require.NoError(t, db.Create(&season).Error)
	return &season
}

func TestCreateEpisodeBroadcastsCatalogEvent(t *testing.T) {
	db := setupTestDB(t)
	season := seedSeason(t, db)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/ws", events.WebSocketHandler)
	router.POST("/seasons/:id/episodes", CreateEpisode)

	srv := httptest.NewServer(router)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Give the hub a moment to register the client after the handshake.
	time.Sleep(50 * time.Millisecond)

	body := strings.NewReader(`{"episodeNumber":1,"title":"Pilot","videoUrl":"https://cdn.example.com/pilot.mp4"}`)
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/seasons/"+season.ID+"/episodes", body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusCreated, res.StatusCode)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var event events.Event
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, "episode.created", event.Type)
}
