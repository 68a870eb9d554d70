// Package maintenance runs the gateway's background housekeeping jobs
// on cron schedules: guest quota sweeps and search cache cleanup.
package maintenance
