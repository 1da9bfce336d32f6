package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/purgedigital/agency-controller-api/internal/api/handler/router"
	"github.com/purgedigital/agency-controller-api/internal/usecases/rostering"
	"github.com/purgedigital/agency-controller-api/internal/usecases/sessioning"
	"github.com/purgedigital/agency-controller-api/internal/usecases/syncing"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Session(service sessioning.Sessioner) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/session",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:    "/v1/session",
			Method:  http.MethodDelete,
			Handler: Logout(service),
		},
		{
			Path:    "/v1/session",
			Method:  http.MethodGet,
			Handler: GetSession(),
		},
	}
}

func Accounts(syncService *syncing.Service, rosterService *rostering.Service) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/accounts",
			Method:  http.MethodGet,
			Handler: AccountList(),
		},
		{
			Path:    "/v1/accounts/:id/overview",
			Method:  http.MethodGet,
			Handler: AccountOverview(syncService, rosterService),
		},
		{
			Path:    "/v1/accounts/:id/team",
			Method:  http.MethodGet,
			Handler: AccountTeam(rosterService),
		},
	}
}

func Scan(service sessioning.Sessioner) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/scan",
			Method:  http.MethodGet,
			Handler: ScanState(),
		},
		{
			Path:    "/v1/scan/skip",
			Method:  http.MethodPost,
			Handler: SkipScan(),
		},
		{
			Path:    "/v1/scan/run",
			Method:  http.MethodPost,
			Handler: RunScan(service),
		},
	}
}
