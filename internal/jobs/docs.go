// Package jobs provides scheduled background tasks built on
// github.com/robfig/cron/v3.
//
// # Available Jobs
//
// VehicleReconciliationJob periodically makes vehicles available again when
// they are marked unavailable but no processing or in-transit order holds
// them, for instance after a crash between two writes of an older release.
//
// # Usage
//
//	job := jobs.NewVehicleReconciliationJob(handler, metrics, "0 */5 * * * *", logger)
//	manager := jobs.NewJobManager(job)
//	if err := manager.StartAll(); err != nil {
//		return err
//	}
//	defer manager.StopAll()
//
// A pass still running when the next tick fires is not started twice.
package jobs
