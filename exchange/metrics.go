package exchange

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/neurogrid/go-neurogrid/metrics"
)

const namespace = "exchange"

var (
	spikesSent = metrics.NewCounter(
		"spikes_sent_total",
		namespace,
		"Spike records collocated into the send buffer.",
		nil,
	).WithLabelValues()

	spikesDelivered = metrics.NewCounter(
		"spikes_delivered_total",
		namespace,
		"Remote spike records delivered to local consumers.",
		nil,
	).WithLabelValues()

	spikeRejects = metrics.NewCounter(
		"spike_rejects_total",
		namespace,
		"Spike records rejected because the destination segment was full.",
		nil,
	).WithLabelValues()

	targetsSent = metrics.NewCounter(
		"targets_sent_total",
		namespace,
		"Target registration records collocated into the send buffer.",
		nil,
	).WithLabelValues()

	targetsRegistered = metrics.NewCounter(
		"targets_registered_total",
		namespace,
		"Target registrations applied to the local delivery table.",
		nil,
	).WithLabelValues()

	targetRejects = metrics.NewCounter(
		"target_rejects_total",
		namespace,
		"Target records rejected because the destination segment was full.",
		nil,
	).WithLabelValues()

	spikeRounds = metrics.NewHistogramWithBuckets(
		"spike_gather_rounds",
		namespace,
		"Rounds needed to complete a spike gather.",
		nil,
		prometheus.LinearBuckets(1, 1, 10),
	).WithLabelValues()

	targetRounds = metrics.NewHistogramWithBuckets(
		"target_gather_rounds",
		namespace,
		"Rounds needed to complete a target gather.",
		nil,
		prometheus.LinearBuckets(1, 1, 10),
	).WithLabelValues()
)
