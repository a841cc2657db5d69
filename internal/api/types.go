package api

import "commitview/internal/domain"

// Wire shapes of the REST API. Absent lists decode as nil and are normalised
// to empty slices before leaving the package.

type repositoriesResponse struct {
	Repositories []domain.Repository `json:"repositories"`
	FromCache    bool                `json:"fromCache"`
}

type commitsResponse struct {
	Commits     []domain.Commit `json:"commits"`
	RepoName    string          `json:"repoName"`
	Owner       string          `json:"owner"`
	CurrentPage int             `json:"currentPage"`
	PerPage     int             `json:"perPage"`
}

type commitDetailResponse struct {
	Commit       *domain.Commit       `json:"commit"`
	ChangedFiles []domain.ChangedFile `json:"changedFiles"`
}

type errorResponse struct {
	Error string `json:"error"`
}
