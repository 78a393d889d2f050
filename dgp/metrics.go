// Copyright (c) 2018 LockTrip
// Distributed under the MIT software license, see the accompanying
// file COPYING or http://www.opensource.org/licenses/mit-license.php.

package dgp

import "github.com/locktrip/go-locktrip/metrics"

var (
	metricRefresh          = metrics.LazyLoadCounterVec("dgp_param_refresh_count", []string{"param", "outcome"})
	metricParamValue       = metrics.LazyLoadGaugeVec("dgp_param_value", []string{"param"})
	metricRewardHistoryLen = metrics.LazyLoad(func() metrics.GaugeMeter {
		return metrics.Gauge("dgp_reward_history_entries")
	})
	metricGasPriceQuote = metrics.LazyLoadCounter("dgp_gas_price_quote_count")
)
