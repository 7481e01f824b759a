package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gabriel-vasile/mimetype"

	"github.com/MKhiriev/flow-bank/internal/app"
	"github.com/MKhiriev/flow-bank/internal/service"
	"github.com/MKhiriev/flow-bank/internal/validators"
	"github.com/MKhiriev/flow-bank/models"
)

type registerField struct {
	label       string
	name        string
	placeholder string
	secret      bool
}

var registerFields = []registerField{
	{label: "Full name", name: validators.FieldFullName, placeholder: "Ada Lovelace"},
	{label: "Email", name: validators.FieldEmail, placeholder: "you@example.com"},
	{label: "Address", name: "address", placeholder: "optional"},
	{label: "Occupation", name: "occupation", placeholder: "optional"},
	{label: "Phone", name: "phone", placeholder: "optional"},
	{label: "Age", name: validators.FieldAge, placeholder: "18-120"},
	{label: "Birth year", name: validators.FieldBirthYear, placeholder: "1990"},
	{label: "ID type", name: validators.FieldIDType, placeholder: "passport / driver_license / national_id"},
	{label: "ID document", name: validators.FieldIDDocument, placeholder: "path to a JPG, PNG or PDF file"},
	{label: "Password", name: validators.FieldPassword, placeholder: "password", secret: true},
	{label: "Confirm", name: validators.FieldConfirmPassword, placeholder: "repeat password", secret: true},
}

func registerFieldIndex(name string) int {
	for i, f := range registerFields {
		if f.name == name {
			return i
		}
	}
	return -1
}

// RegisterModel is the Bubble Tea model for the registration screen. It
// shows the password strength and the confirmation state while typing and
// dispatches an async registration command on submission. On success it
// navigates to the sign-in page.
type RegisterModel struct {
	deps *deps

	inputs     []textinput.Model
	focus      int
	submitting bool
	spinner    spinner.Model
	errMsg     string
}

func NewRegisterModel(d *deps) *RegisterModel {
	inputs := make([]textinput.Model, len(registerFields))
	for i, f := range registerFields {
		inputs[i] = textinput.New()
		inputs[i].Placeholder = f.placeholder
		inputs[i].Width = 40
		if f.secret {
			inputs[i].EchoMode = textinput.EchoPassword
			inputs[i].EchoCharacter = '*'
		}
	}

	return &RegisterModel{
		deps:    d,
		inputs:  inputs,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (m *RegisterModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *RegisterModel) enter(_ *models.Session, _ string) tea.Cmd {
	for i := range m.inputs {
		m.inputs[i].Reset()
	}
	m.submitting = false
	m.errMsg = ""
	m.setFocus(0)
	return textinput.Blink
}

func (m *RegisterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case registerResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = app.UserMessage(msg.err)
			var vErr *validators.ValidationError
			if errors.As(msg.err, &vErr) {
				if idx := registerFieldIndex(vErr.Field); idx >= 0 {
					m.setFocus(idx)
				}
			}
			return m, nil
		}
		return m, navigate(models.PageLogin, app.MsgRegistrationSucceeded)

	case spinner.TickMsg:
		if !m.submitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.esc):
			if m.submitting {
				return m, nil
			}
			return m, navigate(models.PageMenu, "")
		case key.Matches(msg, keys.next):
			m.setFocus((m.focus + 1) % len(m.inputs))
			return m, nil
		case key.Matches(msg, keys.prev):
			m.setFocus((m.focus - 1 + len(m.inputs)) % len(m.inputs))
			return m, nil
		case key.Matches(msg, keys.enter):
			if m.submitting {
				return m, nil
			}
			return m, m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *RegisterModel) submit() tea.Cmd {
	password := m.value(validators.FieldPassword)
	if err := validators.ConfirmPassword(password, m.value(validators.FieldConfirmPassword)); err != nil {
		m.errMsg = app.UserMessage(err)
		m.setFocus(registerFieldIndex(validators.FieldConfirmPassword))
		return nil
	}

	doc, err := loadDocument(m.value(validators.FieldIDDocument))
	if err != nil {
		m.errMsg = "Could not read the ID document: " + err.Error()
		m.setFocus(registerFieldIndex(validators.FieldIDDocument))
		return nil
	}

	age, _ := strconv.Atoi(m.value(validators.FieldAge))
	birthYear, _ := strconv.Atoi(m.value(validators.FieldBirthYear))
	profile := models.Profile{
		FullName:   m.value(validators.FieldFullName),
		Email:      m.value(validators.FieldEmail),
		Address:    m.value("address"),
		Occupation: m.value("occupation"),
		Phone:      m.value("phone"),
		Age:        age,
		BirthYear:  birthYear,
		IDType:     m.value(validators.FieldIDType),
	}

	m.errMsg = ""
	m.submitting = true
	return tea.Batch(m.spinner.Tick, m.cmdRegister(profile, password, doc))
}

func (m *RegisterModel) View() string {
	var b strings.Builder
	b.WriteString("Field        │ Value\n")
	b.WriteString("─────────────┼────────────────────────────────────────────\n")
	for i, f := range registerFields {
		b.WriteString(fmt.Sprintf("%-12s │ [%s]\n", f.label, m.inputs[i].View()))

		switch f.name {
		case validators.FieldPassword:
			b.WriteString(fmt.Sprintf("%-12s │ %s\n", "", renderStrength(m.inputs[i].Value())))
		case validators.FieldConfirmPassword:
			if confirm := m.inputs[i].Value(); confirm != "" && confirm != m.value(validators.FieldPassword) {
				b.WriteString(fmt.Sprintf("%-12s │ %s\n", "", errorStyle.Render(app.MsgPasswordMismatch)))
			}
		}
	}

	if m.submitting {
		b.WriteString("\n" + m.spinner.View() + " Creating your account...\n")
	} else {
		b.WriteString("\n[Open account]\n")
	}
	writeStatus(&b, m.errMsg, "")

	return renderPage("OPEN AN ACCOUNT", strings.TrimRight(b.String(), "\n"), "esc: back │ tab: next field │ enter: submit")
}

func (m *RegisterModel) cmdRegister(profile models.Profile, password string, doc *models.IDDocument) tea.Cmd {
	d := m.deps

	return func() tea.Msg {
		var user models.User
		err := d.guard.Submit(d.ctx, service.FormRegister, func(ctx context.Context) error {
			var err error
			user, err = d.registry.Register(ctx, profile, password, doc)
			return err
		})
		return registerResultMsg{user: user, err: err}
	}
}

func (m *RegisterModel) value(name string) string {
	idx := registerFieldIndex(name)
	if registerFields[idx].secret {
		return m.inputs[idx].Value()
	}
	return strings.TrimSpace(m.inputs[idx].Value())
}

func (m *RegisterModel) setFocus(focus int) {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.focus = focus
	m.inputs[focus].Focus()
}

// renderStrength renders the strength label and the unmet password rules.
func renderStrength(password string) string {
	if password == "" {
		return helpStyle.Render("Enter a password")
	}

	strength := validators.PasswordStrength(password)
	criteria := validators.CheckPassword(password)
	label := strengthStyles[string(strength)].Render(strings.ToUpper(string(strength)[:1]) + string(strength)[1:])

	var missing []string
	if !criteria.Length {
		missing = append(missing, fmt.Sprintf("%d+ chars", validators.MinPasswordLength))
	}
	if !criteria.Upper {
		missing = append(missing, "uppercase")
	}
	if !criteria.Lower {
		missing = append(missing, "lowercase")
	}
	if !criteria.Digit {
		missing = append(missing, "number")
	}
	if !criteria.Symbol {
		missing = append(missing, "special")
	}
	if len(missing) == 0 {
		return label
	}
	return label + helpStyle.Render(" (needs "+strings.Join(missing, ", ")+")")
}

// loadDocument reads the ID document at path. An empty path yields nil.
// Files over the size limit are not read; their type is sniffed from the
// file header.
func loadDocument(path string) (*models.IDDocument, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	doc := &models.IDDocument{Name: filepath.Base(path), Size: info.Size()}
	if info.Size() > validators.MaxDocumentSize {
		mtype, err := mimetype.DetectFile(path)
		if err != nil {
			return nil, err
		}
		doc.MIMEType = mtype.String()
		return doc, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc.Content = content
	doc.MIMEType = mimetype.Detect(content).String()
	return doc, nil
}
