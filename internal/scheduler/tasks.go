package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskBulkOutreach = "outreach.bulk_send"

const TaskLeadEnrich = "leads.enrich"

const TaskCRMSync = "crm.sync_all"

type BulkOutreachPayload struct {
	MinScore int `json:"minScore"`
}

type LeadEnrichPayload struct {
	LeadID string `json:"leadId"`
}

type CRMSyncPayload struct {
	Provider string `json:"provider"`
}

func NewBulkOutreachTask(payload BulkOutreachPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskBulkOutreach, data), nil
}

func ParseBulkOutreachPayload(task *asynq.Task) (BulkOutreachPayload, error) {
	var payload BulkOutreachPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return BulkOutreachPayload{}, err
	}
	return payload, nil
}

func NewLeadEnrichTask(payload LeadEnrichPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLeadEnrich, data), nil
}

func ParseLeadEnrichPayload(task *asynq.Task) (LeadEnrichPayload, error) {
	var payload LeadEnrichPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return LeadEnrichPayload{}, err
	}
	return payload, nil
}

func NewCRMSyncTask(payload CRMSyncPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCRMSync, data), nil
}

func ParseCRMSyncPayload(task *asynq.Task) (CRMSyncPayload, error) {
	var payload CRMSyncPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return CRMSyncPayload{}, err
	}
	return payload, nil
}
