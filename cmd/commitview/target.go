package main

import (
	"errors"
	"fmt"
	"strings"
)

var errBadTarget = errors.New("expected owner/repo or owner/repo@sha")

// target is a deep link into the browser
type target struct {
	Owner string
	Repo  string
	SHA   string
}

func parseTarget(arg string) (target, error) {
	ref, sha, hasSHA := strings.Cut(strings.TrimSpace(arg), "@")
	owner, repo, ok := strings.Cut(ref, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return target{}, fmt.Errorf("%w: %q", errBadTarget, arg)
	}
	if hasSHA && sha == "" {
		return target{}, fmt.Errorf("%w: %q has an empty sha", errBadTarget, arg)
	}
	return target{Owner: owner, Repo: repo, SHA: sha}, nil
}
