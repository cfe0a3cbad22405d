package api

import (
	"image"
	"image/color"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"golang.org/x/image/font"

	"github.com/youruser/qrcard/internal/batch"
	imagepkg "github.com/youruser/qrcard/internal/image"
	"github.com/youruser/qrcard/internal/payload"
	"github.com/youruser/qrcard/internal/roster"
)

const maxQRSize = 2048

// Handler carries what the card endpoint needs to render.
type Handler struct {
	Layout        imagepkg.Layout
	BackgroundDir string

	mu   sync.Mutex // guards face
	face font.Face
}

// NewHandler loads the layout's font once for all requests.
func NewHandler(l imagepkg.Layout, backgroundDir string) (*Handler, error) {
	face, err := imagepkg.LoadFace(l.FontPath, l.FontSize)
	if err != nil {
		return nil, err
	}
	return &Handler{Layout: l, BackgroundDir: backgroundDir, face: face}, nil
}

// health
func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// qr endpoint returns a PNG of a QR for "text" query param
func qrHandler(c *gin.Context) {
	text := c.Query("text")
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}
	size := 400
	if v, err := strconv.Atoi(c.Query("size")); err == nil && v > 0 && v <= maxQRSize {
		size = v
	}
	b, err := imagepkg.GenerateQRPNG(text, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}

// roster endpoint parses a CSV body and reports which rows would become cards
func rosterHandler(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	rd, err := roster.NewReader(c.Request.Body, roster.ColumnsAt(offset))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rows, err := rd.ReadAll()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	included, skipped := roster.Count(rows)
	c.JSON(http.StatusOK, gin.H{"included": included, "skipped": skipped, "rows": rows})
}

type cardRequest struct {
	Honorific     string `json:"honorific"`
	Family        string `json:"family"`
	Given         string `json:"given"`
	Note          string `json:"note"`
	Group         string `json:"group" binding:"required"`
	BackgroundURL string `json:"background_url"`
}

// card image: renders a single card for the posted member
func (h *Handler) cardImageHandler(c *gin.Context) {
	var req cardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rec := roster.NewRecord("", req.Honorific, req.Family, req.Given, req.Note)
	if rec.FullName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is empty"})
		return
	}

	bg := h.background(req)
	p := payload.ForRecord(rec, req.Group, payload.ModeCardName)
	h.mu.Lock()
	card, err := imagepkg.Compose(bg, p, rec, h.Layout, h.face)
	h.mu.Unlock()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	b, err := imagepkg.EncodePNG(card)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", "inline; filename*=UTF-8''"+url.PathEscape(payload.Filename(p)))
	c.Data(http.StatusOK, "image/png", b)
}

// background fetches the template (best-effort), falling back to a blank card.
func (h *Handler) background(req cardRequest) image.Image {
	if req.BackgroundURL != "" {
		img, err := imagepkg.DownloadImage(req.BackgroundURL)
		if err == nil {
			return img
		}
		log.Warnf("background download error: %v", err)
	} else if path, err := batch.ResolveBackground(h.BackgroundDir, payload.Sanitize(req.Group)); err == nil {
		img, err := imagepkg.OpenBackground(path)
		if err == nil {
			return img
		}
		log.Warnf("background open error: %v", err)
	}
	return imaging.New(1000, 700, color.White)
}
