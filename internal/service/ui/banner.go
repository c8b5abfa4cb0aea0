package ui

const banner = `
╔══════════════════════════════════════════════════════════════╗
║                                                              ║
║        🏴‍☠️  CAPTAIN JACK SPARROW AI CHATBOT  🏴‍☠️            ║
║                                                              ║
║           "Not all treasure is silver and gold"              ║
║                                                              ║
╚══════════════════════════════════════════════════════════════╝`

// Banner returns the welcome box printed when the chat loop starts.
func Banner() string {
	return TitleStyle.Render(banner)
}
