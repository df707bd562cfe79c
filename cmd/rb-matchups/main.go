package main

import (
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/tyler180/rb-matchups/internal/app/pipeline"
)

func main() {
	lambda.Start(pipeline.LambdaEntrypoint)
}
