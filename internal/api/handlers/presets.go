package handlers

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"quote-simulator/internal/api/models"
	"quote-simulator/internal/config"
	"quote-simulator/internal/model"

	"github.com/gin-gonic/gin"
)

// PresetHandler serves the read-only simulator presets shipped as YAML
// files. The directory scan is cached briefly; presets change on deploy,
// not at runtime.
type PresetHandler struct {
	presetDir string

	mu        sync.RWMutex
	cached    []preset
	expiresAt time.Time
}

type preset struct {
	id        string
	file      string
	simulator model.Simulator
}

const presetCacheTTL = time.Minute

// NewPresetHandler creates a new preset handler
func NewPresetHandler() *PresetHandler {
	dir := os.Getenv("SIMULATOR_DIR")
	if dir == "" {
		wd, err := os.Getwd()
		if err == nil {
			dir = filepath.Join(wd, "examples", "simulators")
		} else {
			dir = "./examples/simulators"
		}
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	log.Printf("PresetHandler: using preset directory: %s", dir)
	return &PresetHandler{presetDir: dir}
}

// ListPresets handles GET /api/v1/presets
func (h *PresetHandler) ListPresets(c *gin.Context) {
	infos := []models.PresetInfo{}
	for _, p := range h.presets() {
		infos = append(infos, models.PresetInfo{
			ID:         p.id,
			Name:       p.simulator.Name,
			File:       p.file,
			FieldCount: len(p.simulator.Fields),
		})
	}
	c.JSON(http.StatusOK, gin.H{"presets": infos})
}

// GetPreset handles GET /api/v1/presets/:id
func (h *PresetHandler) GetPreset(c *gin.Context) {
	id := c.Param("id")
	for _, p := range h.presets() {
		if p.id == id {
			c.JSON(http.StatusOK, gin.H{
				"id":     p.id,
				"config": models.PayloadFromModel(p.simulator),
			})
			return
		}
	}
	c.JSON(http.StatusNotFound, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "NOT_FOUND",
			Message: "no preset with id " + id,
		},
	})
}

func (h *PresetHandler) presets() []preset {
	h.mu.RLock()
	if time.Now().Before(h.expiresAt) {
		cached := h.cached
		h.mu.RUnlock()
		return cached
	}
	h.mu.RUnlock()

	loaded := h.scan()

	h.mu.Lock()
	h.cached = loaded
	h.expiresAt = time.Now().Add(presetCacheTTL)
	h.mu.Unlock()
	return loaded
}

func (h *PresetHandler) scan() []preset {
	entries, err := os.ReadDir(h.presetDir)
	if err != nil {
		log.Printf("PresetHandler: failed to read preset directory %s: %v", h.presetDir, err)
		return nil
	}

	var out []preset
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || (!strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml")) {
			continue
		}
		path := filepath.Join(h.presetDir, name)
		sim, err := config.Load(path)
		if err != nil {
			log.Printf("PresetHandler: skipping %s: %v", path, err)
			continue
		}
		id := strings.TrimSuffix(strings.TrimSuffix(name, ".yaml"), ".yml")
		if sim.Name == "" {
			sim.Name = id
		}
		out = append(out, preset{id: id, file: path, simulator: sim})
	}
	return out
}
