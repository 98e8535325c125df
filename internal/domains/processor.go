package domains

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bitleak/lmstfy/client"
	"github.com/google/uuid"

	"nexgen/riskops/internal/business"
	"nexgen/riskops/internal/domains/common/job"
	"nexgen/riskops/internal/domains/common/response"
	"nexgen/riskops/pkg/lmstfyx"
	"nexgen/riskops/pkg/logger"
)

// GetProcess 返回核心处理函数（注入到 Processor）
// assessmentService 通过 Context 传递给 Handler，测试可注入桩服务
func GetProcess(log logger.Logger, assessmentService *business.AssessmentService) lmstfyx.Proc {
	return func(ctx context.Context, lmstfyJob *client.Job) *lmstfyx.JobResp {
		startTime := time.Now()

		// 1. 解析 Job
		standardJob, meta, bizPayload, err := parseJob(ctx, lmstfyJob, log)
		if err != nil {
			log.Errorf(ctx, "[GetProcess] parseJob failed: %v", err)
			return &lmstfyx.JobResp{Action: lmstfyx.JobRespStatusBury}
		}

		// 2. 注入 TraceID 和依赖到 Context
		ctx = context.WithValue(ctx, "trace_id", meta.RequestID)
		ctx = context.WithValue(ctx, "action_type", meta.ActionType)
		ctx = context.WithValue(ctx, "order_id", meta.ID)
		if assessmentService != nil {
			ctx = context.WithValue(ctx, "assessment_service", assessmentService)
		}

		log.Infof(ctx, "[GetProcess] Processing job: action_type=%s, request_id=%s, id=%s",
			meta.ActionType, meta.RequestID, meta.ID)

		// 3. 从 HandlerMap 获取 Handler
		handlerFunc, ok := HandlerMap[standardJob.Payload.Data.ActionType]
		if !ok {
			log.Errorf(ctx, "[GetProcess] handler not found for action_type: %s", standardJob.Payload.Data.ActionType)
			return &lmstfyx.JobResp{Action: lmstfyx.JobRespStatusBury}
		}

		// 4. 调用 Handler（捕获 panic）
		var resp *lmstfyx.JobResp
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Errorf(ctx, "[GetProcess] handler panic: %v", r)
					resp = &lmstfyx.JobResp{Action: lmstfyx.JobRespStatusBury}
				}
			}()

			handler, err := handlerFunc(ctx, meta, bizPayload)
			if err != nil {
				log.Errorf(ctx, "[GetProcess] handler creation failed: %v", err)
				resp = &lmstfyx.JobResp{Action: lmstfyx.JobRespStatusBury}
				return
			}

			handlerResp := handler.GetProcess()
			resp = doJobReport(ctx, handlerResp, log)
		}()

		// 5. 记录处理时长
		duration := time.Since(startTime)
		log.Infof(ctx, "[GetProcess] Processing complete: action=%d, duration=%v", resp.Action, duration)

		return resp
	}
}

// parseJob 解析 Job
func parseJob(ctx context.Context, lmstfyJob *client.Job, log logger.Logger) (*job.Job, *job.Meta, interface{}, error) {
	// 1. 反序列化 Job
	var standardJob job.Job
	if err := json.Unmarshal(lmstfyJob.Data, &standardJob); err != nil {
		return nil, nil, nil, fmt.Errorf("json unmarshal failed: %w", err)
	}

	// 2. 校验必填字段
	if standardJob.Payload == nil || standardJob.Payload.Data == nil {
		return nil, nil, nil, fmt.Errorf("invalid job structure: payload.data is nil")
	}

	data := standardJob.Payload.Data

	// 3. 提取元数据
	meta := &job.Meta{
		RequestID:  data.RequestID,
		OrgID:      data.OrgID,
		ActionType: data.ActionType,
		ID:         data.ID,
	}

	// RequestID 为空则生成一个
	if meta.RequestID == "" {
		meta.RequestID = uuid.New().String()
	}

	// 4. 提取业务数据
	bizPayload := data.Data

	log.Debugf(ctx, "[parseJob] Parsed: action_type=%s, request_id=%s, id=%s",
		meta.ActionType, meta.RequestID, meta.ID)

	return &standardJob, meta, bizPayload, nil
}

// doJobReport 根据 Response 生成 JobResp
// 处理成功 ACK；失败按错误的可重试标记决定 Release（重试）或 Bury（丢弃）
func doJobReport(ctx context.Context, resp *response.Response, log logger.Logger) *lmstfyx.JobResp {
	data, err := json.Marshal(resp)
	if err != nil {
		log.Errorf(ctx, "[doJobReport] marshal response failed: %v", err)
		return &lmstfyx.JobResp{Action: lmstfyx.JobRespStatusBury}
	}

	if resp.Error != nil {
		if resp.Error.Retryable {
			return &lmstfyx.JobResp{Action: lmstfyx.JobRespStatusRelease, Data: data}
		}
		return &lmstfyx.JobResp{Action: lmstfyx.JobRespStatusBury, Data: data}
	}

	return &lmstfyx.JobResp{
		Action: lmstfyx.JobRespStatusSuccess,
		Data:   data,
	}
}
