// Copyright (c) 2018 LockTrip
// Distributed under the MIT software license, see the accompanying
// file COPYING or http://www.opensource.org/licenses/mit-license.php.

package governance

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/locktrip/go-locktrip/api/restutil"
	"github.com/locktrip/go-locktrip/dgp"
	"github.com/locktrip/go-locktrip/loc"
)

// Governance exposes the governance engine state over REST. All endpoints
// are read-only; votes are cast through contract transactions, not the API.
type Governance struct {
	cache  *dgp.Cache
	reader *dgp.VoteReader
	pricer *dgp.GasPricer
}

func New(cache *dgp.Cache, reader *dgp.VoteReader, pricer *dgp.GasPricer) *Governance {
	return &Governance{
		cache,
		reader,
		pricer,
	}
}

func (g *Governance) handleGetParams(w http.ResponseWriter, _ *http.Request) error {
	votable := dgp.Votable()
	params := make([]*Param, 0, len(votable))
	for _, p := range votable {
		params = append(params, convertParam(g.cache, p))
	}
	return restutil.WriteJSON(w, params)
}

func (g *Governance) handleGetParam(w http.ResponseWriter, req *http.Request) error {
	name := mux.Vars(req)["name"]
	p, err := loc.ParseDgpParam(name)
	if err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "name"))
	}
	if p == loc.AdminVote || p == loc.RemoveAdminVote {
		return restutil.BadRequest(errors.Errorf("%s is not a votable parameter", name))
	}
	return restutil.WriteJSON(w, convertParam(g.cache, p))
}

func (g *Governance) handleGetVote(w http.ResponseWriter, _ *http.Request) error {
	snapshot, err := g.reader.CurrentVote()
	if err != nil {
		return restutil.ServiceUnavailable(err)
	}
	return restutil.WriteJSON(w, convertVote(snapshot))
}

func (g *Governance) handleGetRewardPercentage(w http.ResponseWriter, req *http.Request) error {
	height, err := strconv.ParseUint(mux.Vars(req)["height"], 10, 64)
	if err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "height"))
	}
	return restutil.WriteJSON(w, &RewardPercentage{
		Height:     height,
		Percentage: g.cache.RewardHistory().At(height),
	})
}

func (g *Governance) handleGetGasPrice(w http.ResponseWriter, _ *http.Request) error {
	quote, err := g.pricer.Quote()
	if err != nil {
		return restutil.ServiceUnavailable(err)
	}
	return restutil.WriteJSON(w, quote)
}

func (g *Governance) handleGetBytePrice(w http.ResponseWriter, _ *http.Request) error {
	price, err := g.pricer.BytePrice()
	if err != nil {
		return restutil.ServiceUnavailable(err)
	}
	return restutil.WriteJSON(w, restutil.M{"bytePrice": price})
}

func (g *Governance) handleConvertThreshold(w http.ResponseWriter, req *http.Request) error {
	cents, err := strconv.ParseUint(mux.Vars(req)["cents"], 10, 64)
	if err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "cents"))
	}
	converted, err := g.reader.ConvertFiatThresholdToLoc(cents)
	if err != nil {
		return restutil.ServiceUnavailable(err)
	}
	return restutil.WriteJSON(w, restutil.M{"cents": cents, "loc": converted})
}

func (g *Governance) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/params").
		Methods(http.MethodGet).
		Name("governance_get_params").
		HandlerFunc(restutil.WrapHandlerFunc(g.handleGetParams))
	sub.Path("/params/{name}").
		Methods(http.MethodGet).
		Name("governance_get_param").
		HandlerFunc(restutil.WrapHandlerFunc(g.handleGetParam))
	sub.Path("/vote").
		Methods(http.MethodGet).
		Name("governance_get_vote").
		HandlerFunc(restutil.WrapHandlerFunc(g.handleGetVote))
	sub.Path("/rewardpercentage/{height}").
		Methods(http.MethodGet).
		Name("governance_get_reward_percentage").
		HandlerFunc(restutil.WrapHandlerFunc(g.handleGetRewardPercentage))
	sub.Path("/gasprice").
		Methods(http.MethodGet).
		Name("governance_get_gas_price").
		HandlerFunc(restutil.WrapHandlerFunc(g.handleGetGasPrice))
	sub.Path("/byteprice").
		Methods(http.MethodGet).
		Name("governance_get_byte_price").
		HandlerFunc(restutil.WrapHandlerFunc(g.handleGetBytePrice))
	sub.Path("/threshold/{cents}").
		Methods(http.MethodGet).
		Name("governance_convert_threshold").
		HandlerFunc(restutil.WrapHandlerFunc(g.handleConvertThreshold))
}
