// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and fixture types for the API.

# Fixture Types

Read-only site content, decoded from YAML or the fixture database:

  - TimelineEntry: dated tariff action with affected countries
  - MarketEvent: tariff event with crypto and stock impact
  - UpcomingRumor: rumor with targets, category and impact level
  - RumoredTariff: rumored tariff card with a trend score
  - VoteRumor: rumor open for yes/no votes with seed counts
  - LeaderboardEntry: prediction accuracy per address
  - Section: page section anchor

# Request Types

  - VoteRequest: choice ("yes" or "no")
  - PredictionRequest: type, target_date (YYYY-MM-DD), confidence, address
  - ScrollRequest, LayoutRequest: navigation updates
  - PageRequest: market pager direction

# Response Types

One response per widget. List responses report empty=true when the
current filters match nothing so clients can show a clear-filters action.

# Constants

	ImpactHigh, ImpactMedium, ImpactLow
	ViewCrypto, ViewStock
	PeriodAllTime, PeriodWeekly, PeriodMonthly
*/
package models
