// Package editor reconciles an editable draft of a portfolio with the loaded
// record and submits the difference as a partial update.
package editor

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/folio/internal/client/client"
	"github.com/dmitrijs2005/folio/internal/client/models"
	"github.com/dmitrijs2005/folio/internal/client/upload"
	"github.com/dmitrijs2005/folio/internal/common"
	"github.com/dmitrijs2005/folio/internal/logging"
	"github.com/jonboulle/clockwork"
)

// CloseDelay is how long the editor stays open after a successful save so the
// confirmation can be read.
const CloseDelay = time.Second

const (
	MsgNoToken       = "Authentication token not found"
	MsgSaved         = "Portfolio updated successfully!"
	MsgNoChanges     = "No changes to save"
	MsgUpdateFailed  = client.MsgUpdateFailed
	MsgImageUploaded = "Image uploaded successfully!"
	MsgNoUploader    = "Image uploads are not configured"
	MsgImageDropped  = "Image uploaded but the item it belongs to is gone"
)

var (
	ErrNoToken   = errors.New(MsgNoToken)
	ErrNoChanges = errors.New(MsgNoChanges)
	ErrClosed    = errors.New("editor closed")
	ErrBusy      = common.ErrBusy

	ErrNoUploader = errors.New(MsgNoUploader)
)

// NotifiedError wraps a failure that was already queued as a notification.
type NotifiedError struct {
	Err error
}

func (e *NotifiedError) Error() string { return e.Err.Error() }
func (e *NotifiedError) Unwrap() error { return e.Err }

// Notified reports whether err has already been shown through the notifier.
func Notified(err error) bool {
	var n *NotifiedError
	return errors.As(err, &n)
}

type Updater interface {
	Update(ctx context.Context, id string, update models.PortfolioUpdate, token string) (*models.Portfolio, error)
}

type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

type Notifier interface {
	Success(msg string, duration ...time.Duration) string
	Error(msg string, duration ...time.Duration) string
	Warning(msg string, duration ...time.Duration) string
}

type Deps struct {
	Updater  Updater
	Tokens   TokenSource
	Uploader upload.Uploader
	Notifier Notifier
	Clock    clockwork.Clock
	Log      logging.Logger
	// OnSaved receives the record returned by a successful update.
	OnSaved func(ctx context.Context, p *models.Portfolio)
}

// ImageTarget addresses an image field: the profile picture when Kind is
// empty, otherwise the image of the list item with Key.
type ImageTarget struct {
	Kind ListKind
	Key  string
}

func ProfileImage() ImageTarget { return ImageTarget{} }

func ItemImage(kind ListKind, key string) ImageTarget {
	return ImageTarget{Kind: kind, Key: key}
}

// Editor owns one edit session. Edits touch only the draft; the loaded record
// is never modified.
type Editor struct {
	deps Deps

	mu       sync.Mutex
	base     models.Portfolio
	original *Draft
	draft    *Draft
	message  string
	closed   bool
	done     chan struct{}

	busy   sync.Mutex
	saving bool
}

// Open starts an edit session over a deep copy of record.
func Open(record *models.Portfolio, deps Deps) *Editor {
	if deps.Clock == nil {
		deps.Clock = clockwork.NewRealClock()
	}
	if deps.Log == nil {
		deps.Log = logging.Nop()
	}

	base := record.Clone()
	d := newDraft(base)
	return &Editor{
		deps:     deps,
		base:     *base,
		original: d.clone(),
		draft:    d,
		done:     make(chan struct{}),
	}
}

func (e *Editor) ID() string { return e.base.ID }

// Draft returns a copy of the current draft.
func (e *Editor) Draft() Draft {
	e.mu.Lock()
	defer e.mu.Unlock()
	return *e.draft.clone()
}

// Preview returns the record as it would look after saving.
func (e *Editor) Preview() models.Portfolio {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.draft.Apply(*e.base.Clone())
}

// Message is the inline error of the last failed save, empty otherwise.
func (e *Editor) Message() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.message
}

// Done is closed when the editor closes, by Cancel or after a save.
func (e *Editor) Done() <-chan struct{} { return e.done }

func (e *Editor) Closed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed
}

func (e *Editor) edit(fn func(d *Draft) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	return fn(e.draft)
}

func (e *Editor) SetName(v string) error {
	return e.edit(func(d *Draft) error { d.Name = v; return nil })
}

func (e *Editor) SetAbout(v string) error {
	return e.edit(func(d *Draft) error { d.AboutMe = v; return nil })
}

func (e *Editor) SetProfilePic(v string) error {
	return e.edit(func(d *Draft) error { d.ProfilePic = v; return nil })
}

func (e *Editor) SetContact(field, value string) error {
	return e.edit(func(d *Draft) error { return setContact(&d.Contact, field, value) })
}

func (e *Editor) Len(kind ListKind) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch kind {
	case Roles:
		return len(e.draft.Roles)
	case Expertise:
		return len(e.draft.Expertise)
	case Projects:
		return len(e.draft.Projects)
	case Social:
		return len(e.draft.Social)
	}
	return 0
}

// Append adds a blank entry at the end of the list and returns its key.
func (e *Editor) Append(kind ListKind) (string, error) {
	var key string
	err := e.edit(func(d *Draft) error {
		switch kind {
		case Roles:
			d.Roles = append(d.Roles, keyed([]string{""})...)
			key = d.Roles[len(d.Roles)-1].Key
		case Expertise:
			d.Expertise = append(d.Expertise, keyed([]models.Expertise{{}})...)
			key = d.Expertise[len(d.Expertise)-1].Key
		case Projects:
			d.Projects = append(d.Projects, keyed([]models.Project{{}})...)
			key = d.Projects[len(d.Projects)-1].Key
		case Social:
			d.Social = append(d.Social, keyed([]models.SocialLink{{}})...)
			key = d.Social[len(d.Social)-1].Key
		default:
			return fmt.Errorf("%w: %q", ErrUnknownList, kind)
		}
		return nil
	})
	return key, err
}

// KeyAt resolves a zero-based position to the item key.
func (e *Editor) KeyAt(kind ListKind, i int) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.keyAt(kind, i)
}

func (e *Editor) keyAt(kind ListKind, i int) (string, error) {
	switch kind {
	case Roles:
		return keyAt(e.draft.Roles, i)
	case Expertise:
		return keyAt(e.draft.Expertise, i)
	case Projects:
		return keyAt(e.draft.Projects, i)
	case Social:
		return keyAt(e.draft.Social, i)
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownList, kind)
}

// RemoveByKey deletes the item; the remaining items keep their order.
func (e *Editor) RemoveByKey(kind ListKind, key string) error {
	return e.edit(func(d *Draft) error {
		var err error
		switch kind {
		case Roles:
			d.Roles, err = removeKey(d.Roles, key)
		case Expertise:
			d.Expertise, err = removeKey(d.Expertise, key)
		case Projects:
			d.Projects, err = removeKey(d.Projects, key)
		case Social:
			d.Social, err = removeKey(d.Social, key)
		default:
			err = fmt.Errorf("%w: %q", ErrUnknownList, kind)
		}
		return err
	})
}

func (e *Editor) RemoveAt(kind ListKind, i int) error {
	key, err := e.KeyAt(kind, i)
	if err != nil {
		return err
	}
	return e.RemoveByKey(kind, key)
}

// UpdateByKey sets one named field of the item. Roles are plain strings and
// accept an empty field name.
func (e *Editor) UpdateByKey(kind ListKind, key, field, value string) error {
	return e.edit(func(d *Draft) error {
		switch kind {
		case Roles:
			return updateKey(d.Roles, key, func(v *string) error { return setRole(v, field, value) })
		case Expertise:
			return updateKey(d.Expertise, key, func(v *models.Expertise) error { return setExpertise(v, field, value) })
		case Projects:
			return updateKey(d.Projects, key, func(v *models.Project) error { return setProject(v, field, value) })
		case Social:
			return updateKey(d.Social, key, func(v *models.SocialLink) error { return setSocial(v, field, value) })
		}
		return fmt.Errorf("%w: %q", ErrUnknownList, kind)
	})
}

func (e *Editor) UpdateAt(kind ListKind, i int, field, value string) error {
	key, err := e.KeyAt(kind, i)
	if err != nil {
		return err
	}
	return e.UpdateByKey(kind, key, field, value)
}

func (e *Editor) setImage(t ImageTarget, url string) error {
	if t.Kind == "" {
		return e.SetProfilePic(url)
	}
	field, err := imageField(t.Kind)
	if err != nil {
		return err
	}
	return e.UpdateByKey(t.Kind, t.Key, field, url)
}

// UploadImage validates f, uploads it and stores the returned URL in the
// target field. On failure the field keeps its value; failures after the
// target is checked are queued as error notifications and returned as
// *NotifiedError.
func (e *Editor) UploadImage(ctx context.Context, t ImageTarget, f upload.File) (string, error) {
	if e.Closed() {
		return "", ErrClosed
	}
	if t.Kind != "" {
		if _, err := imageField(t.Kind); err != nil {
			return "", err
		}
	}

	if err := upload.Validate(f); err != nil {
		e.notifyError(upload.Message(err))
		return "", &NotifiedError{Err: err}
	}
	if e.deps.Uploader == nil {
		e.notifyError(MsgNoUploader)
		return "", &NotifiedError{Err: ErrNoUploader}
	}

	url, err := e.deps.Uploader.Upload(ctx, f)
	if err != nil {
		e.deps.Log.Warn(ctx, "image upload failed", "file", f.Name, "error", err)
		e.notifyError(upload.Message(err))
		return "", &NotifiedError{Err: err}
	}

	if err := e.setImage(t, url); err != nil {
		e.deps.Log.Warn(ctx, "uploaded image not applied", "url", url, "error", err)
		e.notifyError(MsgImageDropped)
		return "", &NotifiedError{Err: err}
	}
	e.notifySuccess(MsgImageUploaded)
	return url, nil
}

func (e *Editor) ClearImage(t ImageTarget) error {
	return e.setImage(t, "")
}

// Changes returns the fields of the draft that differ from the record the
// editor was opened with. Lists are compared as a whole.
func (e *Editor) Changes() models.PortfolioUpdate {
	e.mu.Lock()
	defer e.mu.Unlock()
	return diff(e.original, e.draft)
}

func diff(orig, cur *Draft) models.PortfolioUpdate {
	var u models.PortfolioUpdate
	if cur.Name != orig.Name {
		u.Name = ptr(cur.Name)
	}
	if cur.ProfilePic != orig.ProfilePic {
		u.ProfilePic = ptr(cur.ProfilePic)
	}
	if cur.AboutMe != orig.AboutMe {
		u.AboutMe = ptr(cur.AboutMe)
	}
	if v := values(cur.Roles); !slices.Equal(v, values(orig.Roles)) {
		u.ExpertiseRoles = &v
	}
	if v := values(cur.Expertise); !slices.Equal(v, values(orig.Expertise)) {
		u.Expertise = &v
	}
	if v := values(cur.Projects); !slices.Equal(v, values(orig.Projects)) {
		u.Projects = &v
	}
	if v := values(cur.Social); !slices.Equal(v, values(orig.Social)) {
		u.SocialLinks = &v
	}
	if cur.Contact != orig.Contact {
		c := cur.Contact
		u.Contact = &c
	}
	return u
}

func ptr[T any](v T) *T { return &v }

// Submit sends the changes with the session token. On success the editor
// notifies, hands the saved record to OnSaved and closes after CloseDelay.
// On failure the draft is kept and Message holds the reason.
func (e *Editor) Submit(ctx context.Context) error {
	if e.Closed() {
		return ErrClosed
	}

	e.busy.Lock()
	if e.saving {
		e.busy.Unlock()
		return ErrBusy
	}
	e.saving = true
	e.busy.Unlock()
	defer func() {
		e.busy.Lock()
		e.saving = false
		e.busy.Unlock()
	}()

	update := e.Changes()
	if update.IsEmpty() {
		e.notifyWarning(MsgNoChanges)
		return ErrNoChanges
	}

	token, err := e.token(ctx)
	if err != nil {
		e.fail(MsgNoToken)
		return err
	}

	saved, err := e.deps.Updater.Update(ctx, e.base.ID, update, token)
	if err != nil {
		e.fail(client.Message(err, MsgUpdateFailed))
		return err
	}

	e.mu.Lock()
	e.message = ""
	e.original = e.draft.clone()
	e.mu.Unlock()

	e.notifySuccess(MsgSaved)
	if e.deps.OnSaved != nil {
		e.deps.OnSaved(ctx, saved)
	}
	e.deps.Clock.AfterFunc(CloseDelay, e.close)
	return nil
}

func (e *Editor) token(ctx context.Context) (string, error) {
	if e.deps.Tokens == nil {
		return "", ErrNoToken
	}
	token, err := e.deps.Tokens.Token(ctx)
	if err != nil || token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

func (e *Editor) fail(msg string) {
	e.mu.Lock()
	e.message = msg
	e.mu.Unlock()
	e.notifyError(msg)
}

// Cancel discards the draft.
func (e *Editor) Cancel() { e.close() }

func (e *Editor) close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	close(e.done)
}

func (e *Editor) notifySuccess(msg string) {
	if e.deps.Notifier != nil {
		e.deps.Notifier.Success(msg)
	}
}

func (e *Editor) notifyError(msg string) {
	if e.deps.Notifier != nil {
		e.deps.Notifier.Error(msg)
	}
}

func (e *Editor) notifyWarning(msg string) {
	if e.deps.Notifier != nil {
		e.deps.Notifier.Warning(msg)
	}
}
