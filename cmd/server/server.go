package main

import (
	"image"
	"image/png"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/image/draw"

	celtic "github.com/marben/celtic_explorer"
)

func newRouter(cfg *Config, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/render.png", handleRender(cfg))
	r.Get("/preview.png", handlePreview(cfg))
	r.Get("/ws", handleSession(cfg, logger))
	r.Handle("/*", http.FileServer(http.Dir(cfg.StaticDir)))

	return r
}

// handleRender serves a one-off raster. Every parameter of the engine is a
// query parameter; unspecified ones fall back to the configured defaults.
//
//	/render.png?landmark=cross
//	/render.png?zoom=4000&cx=-1.75&cy=0.02&formula=0&iter=200&palette=hsv
//	/render.png?julia=1&jre=-0.51&jim=0.52
func handleRender(cfg *Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		width := intParam(q.Get("w"), cfg.Width)
		height := intParam(q.Get("h"), cfg.Height)
		maxIter := intParam(q.Get("iter"), cfg.MaxIter)
		formula := celtic.Formula(intParam(q.Get("formula"), cfg.Formula))
		palette := celtic.Palette(cfg.Palette)
		if p := q.Get("palette"); p != "" {
			palette = celtic.Palette(p)
		}

		view := celtic.ViewAt(width, height,
			complex(floatParam(q.Get("cx"), 0), floatParam(q.Get("cy"), 0)),
			floatParam(q.Get("zoom"), cfg.Zoom))
		if name := q.Get("landmark"); name != "" {
			l, ok := celtic.LandmarkByName(name)
			if !ok {
				http.Error(w, "unknown landmark", http.StatusBadRequest)
				return
			}
			view = l.View(width, height)
			formula = l.Formula
		}

		var mode celtic.Mode
		if q.Get("julia") == "1" {
			mode = celtic.Mode{
				Julia:  true,
				JuliaC: complex(floatParam(q.Get("jre"), 0), floatParam(q.Get("jim"), 0)),
			}
		}

		if view.Zoom <= 0 || maxIter <= 0 || width <= 0 || height <= 0 ||
			width*height > 64<<20 || !formula.Valid() {
			http.Error(w, "bad render parameters", http.StatusBadRequest)
			return
		}

		// The request context makes the compute supersedable: a client that
		// disconnects cancels its frame.
		ras, err := celtic.ComputeRaster(r.Context(), view, mode, formula, maxIter, cfg.Workers)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		png.Encode(w, ras.Image(palette))
	}
}

// handlePreview serves a downscaled render of the configured home view.
func handlePreview(cfg *Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		targetW := intParam(r.URL.Query().Get("w"), 200)
		if targetW <= 0 || targetW > cfg.Width {
			http.Error(w, "bad preview width", http.StatusBadRequest)
			return
		}

		ras, err := celtic.ComputeRaster(r.Context(), cfg.View(), celtic.Mode{},
			celtic.Formula(cfg.Formula), cfg.MaxIter, cfg.Workers)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		src := ras.Image(celtic.Palette(cfg.Palette))
		targetH := targetW * cfg.Height / cfg.Width
		dst := image.NewRGBA(image.Rect(0, 0, targetW, targetH))
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

		w.Header().Set("Content-Type", "image/png")
		png.Encode(w, dst)
	}
}

func intParam(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

func floatParam(s string, def float64) float64 {
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return v
}
