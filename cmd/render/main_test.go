package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lysyi3m/reader-render/app/render"
)

func testOptions() options {
	return options{
		Format:           "html",
		Theme:            "light",
		FontFamily:       "serif",
		FontSize:         16,
		DisplayWidth:     1080,
		DisplayDensity:   2.625,
		MarginMedium:     16,
		MarginLarge:      24,
		DetailMargin:     32,
		StylesheetURL:    "https://s0.wp.com/global.css",
		SupportScriptURL: "file:///events.js",
		PhotonHost:       "i0.wp.com",
	}
}

func TestLoadItemFeed(t *testing.T) {
	feed := []byte(`<?xml version="1.0"?>
<rss version="2.0"><channel><title>Blog</title>
<item><title>First</title><link>https://example.com/1</link><description>&lt;p&gt;One&lt;/p&gt;</description></item>
<item><title>Second</title><link>https://example.com/2</link><description>&lt;p&gt;Two&lt;/p&gt;</description></item>
</channel></rss>`)

	opts := testOptions()
	opts.Feed = true
	opts.FeedItem = 1
	opts.PostID = 42

	item, err := loadItem(opts, feed)
	if err != nil {
		t.Fatalf("Failed to load item: %v", err)
	}
	if item.URL != "https://example.com/2" || item.PostID != 42 {
		t.Errorf("Unexpected item %+v", item)
	}

	opts.FeedItem = 5
	if _, err := loadItem(opts, feed); err == nil {
		t.Error("Expected out of range error")
	}
}

func TestLoadItemAttachments(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "attachments.json")
	if err := os.WriteFile(path, []byte(`{"1":{"URL":"https://example.com/a.jpg"}}`), 0644); err != nil {
		t.Fatalf("Failed to write attachments: %v", err)
	}

	opts := testOptions()
	opts.Attachments = path
	opts.Private = true

	item, err := loadItem(opts, []byte("<p>Body</p>"))
	if err != nil {
		t.Fatalf("Failed to load item: %v", err)
	}
	if item.Text != "<p>Body</p>" || !item.IsPrivate || !strings.Contains(item.AttachmentsJSON, "a.jpg") {
		t.Errorf("Unexpected item %+v", item)
	}
}

func TestWriterSurfaceFormats(t *testing.T) {
	var buf bytes.Buffer
	surface := &writerSurface{w: &buf, format: "json"}

	if err := surface.Load(renderResult("<p>x</p>")); err != nil {
		t.Fatalf("Failed to load: %v", err)
	}
	if !strings.Contains(buf.String(), `"script_urls"`) {
		t.Errorf("Expected JSON output, got %s", buf.String())
	}

	buf.Reset()
	surface.format = "html"
	surface.Load(renderResult("<p>x</p>"))
	if buf.String() != "<p>x</p>\n" {
		t.Errorf("Expected raw document, got %q", buf.String())
	}
}

func TestRunWritesDocument(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "post.html")
	output := filepath.Join(dir, "post.out.html")
	if err := os.WriteFile(input, []byte("<p>Hello reader</p>"), 0644); err != nil {
		t.Fatalf("Failed to write input: %v", err)
	}

	opts := testOptions()
	opts.Input = input
	opts.Output = output

	if err := run(opts); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	if !strings.HasPrefix(string(data), "<!DOCTYPE html>") || !strings.Contains(string(data), "Hello reader") {
		t.Errorf("Unexpected document %.80s", data)
	}
}

func renderResult(html string) render.RenderResult {
	return render.RenderResult{HTML: html, ScriptURLs: []string{}}
}
