package tui

// errorOverlayModel covers the active page with an error that is not tied
// to a form field, such as a failed storage read during navigation.
type errorOverlayModel struct {
	message string
}

func (m errorOverlayModel) View() string {
	content := errorStyle.Render("Something went wrong") + "\n\n" + m.message + "\n\n" + helpStyle.Render("enter / esc: close")
	return overlayBoxStyle.Render(content)
}
