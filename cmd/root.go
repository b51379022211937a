package cmd

type Context struct {
	Debug bool
}

var CLI struct {
	Debug bool `help:"Enable debug mode"`

	Import ImportCmd `cmd:"" default:"1" help:"Import a directory of beer JSON documents"`
}
