// Copyright (C) 2025 SAGE-X Project
//
// This file is part of alipay-global-go.
//
// alipay-global-go is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// alipay-global-go is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with alipay-global-go.  If not, see <https://www.gnu.org/licenses/>.

package protocol

import "fmt"

// ResultStatus is the outcome class of an AMS call
type ResultStatus string

const (
	ResultSuccess ResultStatus = "S"
	ResultFailed  ResultStatus = "F"
	ResultUnknown ResultStatus = "U"
)

// Common result codes
const (
	CodeSuccess          = "SUCCESS"
	CodePaymentInProcess = "PAYMENT_IN_PROCESS"
	CodeParamIllegal     = "PARAM_ILLEGAL"
	CodeUnknownException = "UNKNOWN_EXCEPTION"
	CodeAccessDenied     = "ACCESS_DENIED"
	CodeInvalidSignature = "INVALID_SIGNATURE"
)

// Result is present on every response and on notification acknowledgements
type Result struct {
	ResultCode    string       `json:"resultCode"`
	ResultStatus  ResultStatus `json:"resultStatus"`
	ResultMessage string       `json:"resultMessage,omitempty"`
}

// SuccessResult is the result sent to acknowledge a notification
func SuccessResult() Result {
	return Result{
		ResultCode:    CodeSuccess,
		ResultStatus:  ResultSuccess,
		ResultMessage: "Success",
	}
}

// FailedResult reports a rejected notification
func FailedResult(message string) Result {
	if message == "" {
		message = "illegal parameters"
	}
	return Result{
		ResultCode:    CodeParamIllegal,
		ResultStatus:  ResultFailed,
		ResultMessage: message,
	}
}

// IsSuccess reports status S
func (r Result) IsSuccess() bool {
	return r.ResultStatus == ResultSuccess
}

// IsFailed reports status F
func (r Result) IsFailed() bool {
	return r.ResultStatus == ResultFailed
}

// IsUnknown reports status U, or any status the library does not know
func (r Result) IsUnknown() bool {
	return !r.IsSuccess() && !r.IsFailed()
}

func (r Result) String() string {
	return fmt.Sprintf("%s/%s: %s", r.ResultStatus, r.ResultCode, r.ResultMessage)
}

// Response is the part shared by every response body
type Response struct {
	Result Result `json:"result"`
}

// ResultOf gives access to the shared Result
func (r *Response) ResultOf() Result {
	return r.Result
}

// Acknowledgement is the body returned to the gateway after a notification
type Acknowledgement struct {
	Result Result `json:"result"`
}
