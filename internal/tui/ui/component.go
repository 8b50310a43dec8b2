package ui

// Component is the lifecycle contract every view of the shell
// implements. Init runs once when the view is mounted into the page
// stack; Start and Stop bracket each visit. Hints feeds the menu panel
// while the view is on top.
type Component interface {
	Name() string
	Init()
	Start()
	Stop()
	Hints() []MenuHint
}
