package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Source --dir ../domain/tournament --output domain/tournament --outpkg tournamentmock --filename source_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/rawdata --output domain/rawdata --outpkg rawdatamock --filename repository_mock.go
