// Command seed loads a small demo dataset into a running API instance and
// optionally triggers a generation run, for local smoke testing.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

type createdEntity struct {
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

type client struct {
	base string
	http *http.Client
}

func (c *client) post(path string, payload map[string]interface{}) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	resp, err := c.http.Post(c.base+path, "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("POST %s: status %d: %s", path, resp.StatusCode, raw)
	}
	var created createdEntity
	if err := json.Unmarshal(raw, &created); err != nil {
		return "", nil
	}
	return created.Data.ID, nil
}

func main() {
	base := flag.String("base", "http://localhost:8080/api/v1", "API base URL")
	universe := flag.String("universe", "demo", "scheduling universe id")
	generate := flag.Bool("generate", true, "trigger a generation run after seeding")
	flag.Parse()

	c := &client{base: *base, http: &http.Client{Timeout: 10 * time.Second}}

	teacherID, err := c.post("/teachers", map[string]interface{}{
		"universe_id":    *universe,
		"name":           "Ada Lovelace",
		"preferred_days": "2,4",
	})
	if err != nil {
		log.Fatalf("seed teacher: %v", err)
	}

	groupID, err := c.post("/groups", map[string]interface{}{
		"universe_id": *universe,
		"name":        "1-A",
		"size":        28,
	})
	if err != nil {
		log.Fatalf("seed group: %v", err)
	}

	if _, err := c.post("/rooms", map[string]interface{}{
		"universe_id":  *universe,
		"name":         "A-101",
		"capacity":     30,
		"type":         "lecture",
		"availability": "1111111,1111111,1111111,1111111,1111100",
	}); err != nil {
		log.Fatalf("seed room: %v", err)
	}

	if _, err := c.post("/courses", map[string]interface{}{
		"universe_id": *universe,
		"name":        "Algebra",
		"type":        "lecture",
		"hours":       3,
		"teacher_id":  teacherID,
		"group_id":    groupID,
		"room_type":   "lecture",
	}); err != nil {
		log.Fatalf("seed course: %v", err)
	}

	log.Printf("seeded universe %q", *universe)

	if *generate {
		if _, err := c.post("/schedule/generate", map[string]interface{}{
			"universe_id": *universe,
		}); err != nil {
			log.Fatalf("generate: %v", err)
		}
		log.Printf("generation run complete, grid at %s/timetable?universe_id=%s", *base, *universe)
	}
}
