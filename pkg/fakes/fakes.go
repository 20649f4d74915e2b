package fakes

//go:generate counterfeiter -o ./fake_activity_source.go ../activity ActivitySource
//go:generate counterfeiter -o ./fake_target.go ../engine Target
//go:generate counterfeiter -o ./fake_collector.go ../engine Collector
//go:generate counterfeiter -o ./fake_recorder.go ../engine Recorder
