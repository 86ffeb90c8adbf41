package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taskwire/taskwire/remote"
	"github.com/taskwire/taskwire/store"
	"github.com/taskwire/taskwire/task"
)

// handlers carries the service dependencies into the gin routes.
type handlers struct {
	store *store.Store
}

// importResponse is the normalized result of any decoding endpoint. Tasks are
// always re-encoded in the current (TW26) depends format. Errors is only
// populated in line mode, where per-record failures do not abort the batch.
type importResponse struct {
	Tasks  []task.Task[task.TW26] `json:"tasks"`
	Errors []string               `json:"errors,omitempty"`
}

// decodeBatch decodes body in the requested wire format and batch mode and
// normalizes everything to the current depends format.
func decodeBatch(format, mode string, body []byte) (*importResponse, error) {
	switch format {
	case "tw26":
		tasks, errs, err := decodeAs[task.TW26](mode, body)
		if err != nil {
			return nil, err
		}
		return &importResponse{Tasks: tasks, Errors: errs}, nil
	case "tw25":
		legacy, errs, err := decodeAs[task.TW25](mode, body)
		if err != nil {
			return nil, err
		}
		tasks := make([]task.Task[task.TW26], 0, len(legacy))
		for _, t := range legacy {
			tasks = append(tasks, task.Convert[task.TW26](t))
		}
		return &importResponse{Tasks: tasks, Errors: errs}, nil
	default:
		return nil, fmt.Errorf("unknown format %q, expected tw25 or tw26", format)
	}
}

func decodeAs[V task.Version](mode string, body []byte) ([]task.Task[V], []string, error) {
	switch mode {
	case "array":
		tasks, err := task.Import[V](bytes.NewReader(body))
		if err != nil {
			return nil, nil, err
		}
		return tasks, nil, nil
	case "lines":
		var tasks []task.Task[V]
		var errs []string
		for i, res := range task.ImportLines[V](bytes.NewReader(body)) {
			if res.Err != nil {
				errs = append(errs, fmt.Sprintf("record %d: %v", i+1, res.Err))
				continue
			}
			tasks = append(tasks, res.Task)
		}
		return tasks, errs, nil
	default:
		return nil, nil, fmt.Errorf("unknown mode %q, expected array or lines", mode)
	}
}

func (h *handlers) record(tasks []task.Task[task.TW26]) {
	if h.store == nil {
		return
	}
	if err := h.store.Record(tasks); err != nil {
		log.Errorf("Failed to record snapshots: %v", err)
	}
}

func (h *handlers) respond(c *gin.Context, resp *importResponse) {
	if resp.Tasks == nil {
		resp.Tasks = []task.Task[task.TW26]{}
	}
	h.record(resp.Tasks)
	c.JSON(http.StatusOK, resp)
}

// HandleImport decodes the request body (query params format=tw25|tw26,
// mode=array|lines) and returns the batch normalized to the current format.
func (h *handlers) HandleImport(c *gin.Context) {
	format := c.DefaultQuery("format", "tw26")
	mode := c.DefaultQuery("mode", "array")

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("failed to read body: %v", err)})
		return
	}

	resp, err := decodeBatch(format, mode, body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	log.Infof("Imported %d tasks (format=%s mode=%s, %d rejected records)",
		len(resp.Tasks), format, mode, len(resp.Errors))
	h.respond(c, resp)
}

// HandleConvert migrates a legacy (TW25) JSON array to the current format.
func (h *handlers) HandleConvert(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("failed to read body: %v", err)})
		return
	}

	resp, err := decodeBatch("tw25", "array", body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	log.Infof("Converted %d tasks from the legacy depends format", len(resp.Tasks))
	h.respond(c, resp)
}

// HandleFetch pulls a JSON array export from a remote URL, normalizes and
// records it. Credentials for the remote endpoint come from the username and
// password query params.
func (h *handlers) HandleFetch(c *gin.Context) {
	url := c.Query("url")
	if url == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing url parameter"})
		return
	}
	format := c.DefaultQuery("format", "tw26")

	body, err := remote.Fetch(c.Request.Context(), url, c.Query("username"), c.Query("password"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	resp, err := decodeBatch(format, "array", body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	log.Infof("Fetched %d tasks from %s", len(resp.Tasks), url)
	h.respond(c, resp)
}

// HandleRecent lists snapshots recorded within the last N seconds.
func (h *handlers) HandleRecent(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "snapshot store not configured"})
		return
	}
	seconds, err := strconv.Atoi(c.DefaultQuery("seconds", "3600"))
	if err != nil || seconds <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "seconds must be a positive integer"})
		return
	}

	rows, err := h.store.Recent(time.Duration(seconds) * time.Second)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"snapshots": rows})
}
