package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/grinta-launcher/grinta/pkg/models"
)

// UntitledNote is the title used when a note is created from an empty query
const UntitledNote = "Untitled Note"

const listNotesScript = `
const Notes = Application("Notes");
Notes.includeStandardAdditions = true;
const notes = [];
Notes.folders().forEach(function (folder) {
  folder.notes().forEach(function (note) {
    notes.push({ id: note.id(), title: note.name(), folder: folder.name() });
  });
});
console.log(JSON.stringify(notes));
`

const showNoteScript = `
const Notes = Application("Notes");
const note = Notes.notes.byId(%s);
Notes.activate();
Notes.show(note);
`

const createNoteScript = `
const Notes = Application("Notes");
const folder = Notes.accounts.byName("iCloud").folders.byName("Notes");
const note = Notes.Note({ body: %s });
folder.notes.push(note);
console.log(note.id().trim());
`

const deleteNoteScript = `
const Notes = Application("Notes");
Notes.notes.byId(%s).delete();
`

type noteRecord struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Folder string `json:"folder"`
}

// Notes talks to the macOS Notes app through JavaScript for Automation
type Notes struct {
	runner    Runner
	supported bool
}

// NewNotes creates a Notes adapter
func NewNotes(runner Runner) *Notes {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Notes{runner: runner, supported: currentPlatform.notes}
}

// Supported reports whether the platform has a Notes app to drive
func (n *Notes) Supported() bool { return n.supported }

// List returns every note, labelled "Title (Folder)" with the note id as value
func (n *Notes) List(ctx context.Context) ([]models.Item, error) {
	out, err := n.script(ctx, listNotesScript)
	if err != nil {
		return nil, err
	}

	var records []noteRecord
	if err := json.Unmarshal([]byte(out), &records); err != nil {
		return nil, fmt.Errorf("failed to parse notes: %w", err)
	}

	items := make([]models.Item, 0, len(records))
	for _, r := range records {
		label := fmt.Sprintf("%s (%s)", r.Title, r.Folder)
		items = append(items, models.NewItem(label, models.VariantNote, r.ID).WithMeta("folder", r.Folder))
	}
	return items, nil
}

// Create adds a note titled title and returns its id
func (n *Notes) Create(ctx context.Context, title string) (string, error) {
	if strings.TrimSpace(title) == "" {
		title = UntitledNote
	}
	body := fmt.Sprintf("<div><h1>%s</h1></div>", html.EscapeString(title))

	out, err := n.script(ctx, fmt.Sprintf(createNoteScript, jsString(body)))
	if err != nil {
		return "", fmt.Errorf("failed to create note: %w", err)
	}
	id := strings.TrimSpace(out)
	if id == "" {
		return "", errors.New("failed to create note: no id returned")
	}
	return id, nil
}

// Open brings the note with id to the front
func (n *Notes) Open(ctx context.Context, id string) error {
	if _, err := n.script(ctx, fmt.Sprintf(showNoteScript, jsString(id))); err != nil {
		return fmt.Errorf("failed to open note: %w", err)
	}
	return nil
}

// Delete removes the note with id
func (n *Notes) Delete(ctx context.Context, id string) error {
	if _, err := n.script(ctx, fmt.Sprintf(deleteNoteScript, jsString(id))); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return nil
}

// script runs a JXA script. console.log writes to stderr under osascript, so
// that is where results are read from.
func (n *Notes) script(ctx context.Context, source string) (string, error) {
	if !n.supported {
		return "", ErrUnsupported
	}
	_, stderr, err := n.runner.Output(ctx, "osascript", "-l", "JavaScript", "-e", source)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(stderr)), nil
}

// jsString quotes s as a JavaScript string literal
func jsString(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}
