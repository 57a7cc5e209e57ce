package views

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"math"
	"strconv"
	"time"
	"warboard/internal/models"
	"warboard/internal/services"
)

// MembersPerGroup is the layout chunk size of a member column.
const MembersPerGroup = 10

// Fragments holds the pieces of the clan page. Every field except Title is
// trusted HTML produced by the renderer's templates.
type Fragments struct {
	Title          string        `json:"title"`
	WarStatus      template.HTML `json:"warStatus"`
	Clan           template.HTML `json:"clan"`
	Opponent       template.HTML `json:"opponent"`
	MembersLeft    template.HTML `json:"membersLeft"`
	MembersRight   template.HTML `json:"membersRight"`
	Time           template.HTML `json:"time"`
	TimeDifference template.HTML `json:"timeDifference"`
}

type RendererInterface interface {
	Render(tag string, snapshot *models.WarSnapshot, aggregate *models.AggregateResult) (Fragments, error)
	Page(w io.Writer, tag string, fragments Fragments) error
}

type Renderer struct {
	warStatus  *template.Template
	badge      *template.Template
	members    *template.Template
	totals     *template.Template
	difference *template.Template
	page       *template.Template
	now        func() time.Time
}

type statusView struct {
	Label     string
	Remaining string
}

type memberView struct {
	Name       string
	HasAttack  bool
	Stars      int
	Percentage string
	Duration   string
}

type badgeView struct {
	BadgeURL string
	Name     string
}

// Render never fails on a nil snapshot or aggregate; the missing parts are
// left empty and the status shows the waiting message.
func (r *Renderer) Render(tag string, snapshot *models.WarSnapshot, aggregate *models.AggregateResult) (Fragments, error) {
	f := Fragments{Title: "Clan - " + tag}

	var err error
	if f.WarStatus, err = execute(r.warStatus, r.status(snapshot)); err != nil {
		return f, err
	}

	if snapshot == nil {
		return f, nil
	}

	if f.Clan, err = execute(r.badge, badgeView{BadgeURL: snapshot.Clan.BadgeURL(), Name: snapshot.Clan.Name}); err != nil {
		return f, err
	}
	if f.Opponent, err = execute(r.badge, badgeView{BadgeURL: snapshot.Opponent.BadgeURL(), Name: snapshot.Opponent.Name}); err != nil {
		return f, err
	}

	if snapshot.State.Waiting() {
		return f, nil
	}

	if f.MembersLeft, err = execute(r.members, ChunkMembers(memberViews(snapshot.Clan.Members), MembersPerGroup)); err != nil {
		return f, err
	}
	if f.MembersRight, err = execute(r.members, ChunkMembers(memberViews(snapshot.Opponent.Members), MembersPerGroup)); err != nil {
		return f, err
	}

	if aggregate == nil {
		return f, nil
	}

	f.Time, err = execute(r.totals, map[string]string{
		"ClanPercentage":     FormatPercentage(aggregate.ClanTotalPercentage),
		"ClanDuration":       services.FormatDuration(aggregate.ClanTotalDuration),
		"OpponentPercentage": FormatPercentage(aggregate.OpponentTotalPercentage),
		"OpponentDuration":   services.FormatDuration(aggregate.OpponentTotalDuration),
	})
	if err != nil {
		return f, err
	}
	f.TimeDifference, err = execute(r.difference, map[string]string{
		"Percentage": FormatPercentage(aggregate.PercentageDifference),
		"Duration":   services.FormatDuration(aggregate.DurationDifference),
	})
	return f, err
}

func (r *Renderer) status(snapshot *models.WarSnapshot) statusView {
	if snapshot == nil || snapshot.State.Waiting() {
		return statusView{Label: services.WaitingMessage}
	}
	view := statusView{Label: services.StateLabel(snapshot.State)}
	if next, ok := snapshot.NextPhaseAt(); ok {
		view.Remaining = FormatRemaining(next.Sub(r.now()))
	}
	return view
}

func (r *Renderer) Page(w io.Writer, tag string, fragments Fragments) error {
	return r.page.Execute(w, struct {
		Tag       string
		Fragments Fragments
	}{Tag: tag, Fragments: fragments})
}

func memberViews(members []models.Member) []memberView {
	out := make([]memberView, 0, len(members))
	for i := range members {
		mv := memberView{Name: members[i].Name}
		if a, ok := members[i].FirstAttack(); ok {
			mv.HasAttack = true
			mv.Stars = a.Stars
			mv.Percentage = FormatPercentage(a.DestructionPercentage)
			mv.Duration = services.FormatDuration(a.Duration)
		}
		out = append(out, mv)
	}
	return out
}

// ChunkMembers splits items into consecutive groups of size; the last group
// may be shorter.
func ChunkMembers[T any](items []T, size int) [][]T {
	if size <= 0 {
		size = MembersPerGroup
	}
	groups := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		groups = append(groups, items[start:end])
	}
	return groups
}

// FormatRemaining renders time left until the next phase as "{h}h{mm}m",
// clamped at zero.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	minutes := int(d / time.Minute)
	return fmt.Sprintf("%dh%02dm", minutes/60, minutes%60)
}

// FormatPercentage prints at most two decimals and drops trailing zeros.
func FormatPercentage(value float64) string {
	return strconv.FormatFloat(math.Round(value*100)/100, 'f', -1, 64)
}

func execute(t *template.Template, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s: %w", t.Name(), err)
	}
	return template.HTML(buf.String()), nil
}

func NewRenderer() (RendererInterface, error) {
	parse := func(name, text string) (*template.Template, error) {
		t, err := template.New(name).Parse(text)
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		return t, nil
	}

	r := &Renderer{now: time.Now}
	var err error
	if r.warStatus, err = parse("warStatus", warStatusTemplate); err != nil {
		return nil, err
	}
	if r.badge, err = parse("badge", badgeTemplate); err != nil {
		return nil, err
	}
	if r.members, err = parse("members", membersTemplate); err != nil {
		return nil, err
	}
	if r.totals, err = parse("totals", totalsTemplate); err != nil {
		return nil, err
	}
	if r.difference, err = parse("difference", differenceTemplate); err != nil {
		return nil, err
	}
	if r.page, err = parse("page", pageTemplate); err != nil {
		return nil, err
	}
	return r, nil
}
