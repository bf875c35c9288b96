package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/season --output domain/season --outpkg seasonmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/team --output domain/team --outpkg teammock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/member --output domain/member --outpkg membermock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/match --output domain/match --outpkg matchmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name EventPublisher --dir ../domain/match --output domain/match --outpkg matchmock --filename event_publisher_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/lineup --output domain/lineup --outpkg lineupmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name RecordRepository --dir ../domain/standing --output domain/standing --outpkg standingmock --filename record_repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name TableRepository --dir ../domain/handicap --output domain/handicap --outpkg handicapmock --filename table_repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name MatchupRepository --dir ../domain/schedule --output domain/schedule --outpkg schedulemock --filename matchup_repository_mock.go
