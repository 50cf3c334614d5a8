package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/seatmap/internal/model"
)

func TestExportSeatTags_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tags.pdf")

	err := ExportSeatTags(path, "Main Hall", buildTestScene())
	if err != nil {
		t.Fatalf("ExportSeatTags returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() < 500 {
		t.Errorf("PDF file seems too small: %d bytes", info.Size())
	}
}

func TestExportSeatTags_NoSeats(t *testing.T) {
	path := filepath.Join(t.TempDir(), "none.pdf")

	scene := model.NewScene(800, 600)
	scene.Add(model.NewZone(model.Point{X: 0, Y: 0}))
	scene.Add(model.NewSeat(model.Point{X: 200, Y: 200}, "")) // unnumbered

	if err := ExportSeatTags(path, "Empty", scene); err == nil {
		t.Fatal("expected error for scene without numbered seats, got nil")
	}
	if err := ExportSeatTags(path, "Nil", nil); err == nil {
		t.Fatal("expected error for nil scene, got nil")
	}
}

func TestCollectSeatTags(t *testing.T) {
	tags := CollectSeatTags("Main Hall", buildTestScene())

	if len(tags) != 4 {
		t.Fatalf("expected 4 tags, got %d", len(tags))
	}
	if tags[0].Seat != "1" || tags[0].Category != "vip" || tags[0].Price != 120 {
		t.Errorf("unexpected first tag %+v", tags[0])
	}
	if tags[2].Status != model.StatusSold {
		t.Errorf("expected third tag sold, got %s", tags[2].Status)
	}
	for _, tag := range tags {
		if tag.Layout != "Main Hall" {
			t.Errorf("expected layout name on every tag, got %q", tag.Layout)
		}
		if tag.ID == "" {
			t.Error("expected object id on every tag")
		}
	}
}

func TestSeatTag_JSONKeys(t *testing.T) {
	data, err := json.Marshal(SeatTag{Layout: "Hall", Seat: "A1", Category: "vip", Price: 10, Status: model.StatusReserved, ID: "abc"})
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	for _, key := range []string{"layout", "seat", "category", "price", "status", "id"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("missing key %q in %s", key, data)
		}
	}
	if raw["status"] != "reserved" {
		t.Errorf("expected status reserved, got %v", raw["status"])
	}
}

func TestExportSeatTags_ManySeats(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "many_tags.pdf")

	// 35 seats spill onto a second label page
	scene := model.NewScene(2000, 1000)
	for i := 0; i < 35; i++ {
		scene.Add(model.NewSeat(model.Point{X: float64(i * 30), Y: 10}, fmt.Sprintf("R%d", i+1)))
	}

	if err := ExportSeatTags(path, "A very long layout name that needs truncation on the tag", scene); err != nil {
		t.Fatalf("ExportSeatTags returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("PDF file is empty")
	}
}
