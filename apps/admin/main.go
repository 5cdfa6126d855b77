package main

import (
	"log"
	"os"

	"github.com/classportal/backend/core"
)

var logger *log.Logger

func main() {
	logger = log.New(os.Stderr, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()
	baseURL := "http://" + conf.Server.Host + conf.Server.Address

	// start CLI
	cli := commandLine{
		client: newAPIClient(baseURL),
		out:    os.Stdout,
		outFd:  stdoutFd(),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}
