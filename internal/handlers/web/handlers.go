package web

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/KirkDiggler/lunchwheel/internal/models"
	"github.com/KirkDiggler/lunchwheel/internal/services/spin"
	"github.com/dustin/go-humanize"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func (s *Server) serveHealthCheck() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		s.securityHeaders(w)

		if _, err := w.Write([]byte("Ok\n")); err != nil {
			log.Debug().Err(err).Msg("failed to write health check")
		}
	}
}

func (s *Server) serveWheel() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		startTime := time.Now()

		mode, ok := models.ParseMode(p.ByName("mode"))
		if !ok {
			http.NotFound(w, r)
			return
		}

		preview, err := s.cfg.SpinService.Preview(r.Context(), &spin.PreviewInput{
			WheelID: WheelID,
			Mode:    mode,
		})
		if err != nil {
			if errors.Is(err, spin.ErrUnknownMode) {
				http.NotFound(w, r)
				return
			}
			log.Error().Err(err).Str("mode", string(mode)).Msg("failed to render wheel")
			http.Error(w, "render failed", http.StatusInternalServerError)
			return
		}

		s.writePNG(w, preview.PNG)

		log.Debug().
			Str("mode", string(mode)).
			Int("options", len(preview.Options)).
			Str("size", humanize.Bytes(uint64(len(preview.PNG)))).
			Str("remote", r.RemoteAddr).
			Dur("took", time.Since(startTime)).
			Msg("served wheel")
	}
}

func (s *Server) serveShareQR() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		png, err := s.cfg.Linker.QRCode()
		if err != nil {
			log.Error().Err(err).Msg("failed to generate share qr code")
			http.Error(w, "qr generation failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Cache-Control", "public, max-age=3600")
		s.writePNG(w, png)
	}
}

func (s *Server) serveLiveOptions() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Debug().Err(err).Msg("websocket upgrade failed")
			return
		}

		c := &client{
			conn: conn,
			send: make(chan OptionsMessage, 8),
		}

		s.hub.register(c, s.cfg.OptionsService.Document)

		go c.writePump()
		c.readPump(s.hub)
	}
}

func (s *Server) writePNG(w http.ResponseWriter, png []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	s.securityHeaders(w)

	if _, err := w.Write(png); err != nil {
		log.Debug().Err(err).Msg("failed to write png")
	}
}
