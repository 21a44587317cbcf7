// Package routes wires the compression engine to HTTP: multipart upload in,
// a compressed/decompressed attachment out, plus a JSON simulate endpoint
// and the usage-stats sidecar. None of this participates in engine
// correctness — it's the out-of-scope collaborator the engine only ever
// sees as a byte stream plus a sink.
package routes

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelbwah/huffmin/internal/container"
	"github.com/kelbwah/huffmin/internal/engine"
	"github.com/kelbwah/huffmin/internal/huffman"
	"github.com/kelbwah/huffmin/internal/lzw"
	"github.com/kelbwah/huffmin/internal/simulate"
	"github.com/kelbwah/huffmin/internal/stats"
	"github.com/labstack/echo/v4"
)

// Handlers bundles the stats sidecar shared by every route.
type Handlers struct {
	Stats *stats.Store
}

// NewHandlers wires a Handlers against the given stats store.
func NewHandlers(s *stats.Store) *Handlers {
	return &Handlers{Stats: s}
}

func readUploadedFile(c echo.Context) (string, []byte, error) {
	file, err := c.FormFile("file")
	if err != nil {
		return "", nil, echo.NewHTTPError(http.StatusBadRequest, "file required")
	}
	src, err := file.Open()
	if err != nil {
		return "", nil, echo.NewHTTPError(http.StatusInternalServerError, "cannot open uploaded file")
	}
	defer src.Close()

	tempInputPath := filepath.Join(os.TempDir(), filepath.Base(file.Filename))
	outFile, err := os.Create(tempInputPath)
	if err != nil {
		return "", nil, echo.NewHTTPError(http.StatusInternalServerError, "failed to create temp file")
	}
	defer func() {
		outFile.Close()
		os.Remove(tempInputPath)
	}()

	if _, err := io.Copy(outFile, src); err != nil {
		return "", nil, echo.NewHTTPError(http.StatusInternalServerError, "failed to copy file data")
	}

	data, err := os.ReadFile(tempInputPath)
	if err != nil {
		return "", nil, echo.NewHTTPError(http.StatusInternalServerError, "failed to read temp file")
	}

	return file.Filename, data, nil
}

// CompressFile compresses the uploaded "file" field and streams back the
// container frame as an attachment.
func (h *Handlers) CompressFile(c echo.Context) error {
	filename, data, err := readUploadedFile(c)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot compress empty file")
	}

	compressedBytes := engine.Compress(data)

	if h.Stats != nil {
		_ = h.Stats.RecordCompress(len(data), len(compressedBytes))
	}

	c.Response().Header().Set(echo.HeaderContentType, "application/octet-stream")
	c.Response().Header().Set(
		echo.HeaderContentDisposition,
		"attachment; filename=\"compressed_"+filename+".huff\"",
	)

	_, err = c.Response().Write(compressedBytes)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to write response")
	}
	return nil
}

// DecompressFile decompresses the uploaded "file" field and streams back
// the recovered bytes as an attachment.
func (h *Handlers) DecompressFile(c echo.Context) error {
	filename, data, err := readUploadedFile(c)
	if err != nil {
		return err
	}

	decompressedBytes, err := engine.Decompress(data)
	if err != nil {
		return decodeHTTPError(err)
	}

	if h.Stats != nil {
		_ = h.Stats.RecordDecompress(len(data), len(decompressedBytes))
	}

	c.Response().Header().Set(echo.HeaderContentType, "application/octet-stream")
	c.Response().Header().Set(
		echo.HeaderContentDisposition,
		"attachment; filename=\"decompressed_"+strings.TrimSuffix(filename, ".huff")+"\"",
	)

	_, err = c.Response().Write(decompressedBytes)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to write response")
	}
	return nil
}

type simulateRequest struct {
	Text string `json:"text"`
}

// Simulate runs all three compression strategies over either a JSON "text"
// field or an uploaded "file" field and returns the comparison report.
func (h *Handlers) Simulate(c echo.Context) error {
	var data []byte

	if ct := c.Request().Header.Get(echo.HeaderContentType); strings.HasPrefix(ct, echo.MIMEApplicationJSON) {
		var req simulateRequest
		if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON body")
		}
		if req.Text == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "no text provided")
		}
		data = []byte(req.Text)
	} else {
		_, fileData, err := readUploadedFile(c)
		if err != nil {
			return err
		}
		data = fileData
	}

	report, err := simulate.Run(data)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, report)
}

// GetStats returns the current usage counters.
func (h *Handlers) GetStats(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Stats.Load())
}

// ResetStats clears the usage counters.
func (h *Handlers) ResetStats(c echo.Context) error {
	if err := h.Stats.Reset(); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to reset stats")
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "success"})
}

// decodeHTTPError maps an engine decode failure to the right HTTP status:
// malformed input is a client error (422), anything else is a server error.
func decodeHTTPError(err error) error {
	switch {
	case errors.Is(err, container.ErrUnknownFlag):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "unknown container flag")
	case errors.Is(err, huffman.ErrMalformedHeader):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, lzw.ErrMalformedLZW):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "decompression failed")
	}
}
