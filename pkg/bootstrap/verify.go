package bootstrap

import (
	"context"
	"fmt"

	"github.com/moby/moby/client"
	"github.com/sirupsen/logrus"
)

// verify reports the installed runtime and compose versions, the final
// step of the sequence. The CLI checks are required; the daemon API probe
// is best-effort because the socket may not yet admit this process.
func (in *Installer) verify(ctx context.Context) error {
	version, err := in.Runner.Output(ctx, "docker", "--version")
	if err != nil {
		return fmt.Errorf("docker CLI not runnable after install: %w", err)
	}
	in.Log.WithField("version", version).Info("docker installed")

	compose, err := in.Runner.Output(ctx, "docker", "compose", "version")
	if err != nil {
		return fmt.Errorf("compose plugin not runnable after install: %w", err)
	}
	in.Log.WithField("version", compose).Info("compose installed")

	in.probeDaemon(ctx)
	return nil
}

func (in *Installer) probeDaemon(ctx context.Context) {
	cli, err := client.New(client.FromEnv)
	if err != nil {
		in.Log.Warnf("daemon API client: %v", err)
		return
	}
	defer func() { _ = cli.Close() }()

	if _, err := cli.Ping(ctx, client.PingOptions{}); err != nil {
		in.Log.Warnf("daemon not answering on its socket yet: %v", err)
		return
	}

	server, err := cli.ServerVersion(ctx, client.ServerVersionOptions{})
	if err != nil {
		in.Log.Warnf("daemon version query: %v", err)
		return
	}
	in.Log.WithFields(logrus.Fields{
		"server_version": server.Version,
		"api_version":    server.APIVersion,
	}).Info("daemon answering")
}
