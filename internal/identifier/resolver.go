package identifier

import (
	"fmt"
	"strings"

	"driftremediator/internal/models"
)

// arnRule decodes one service's resource-part convention into identifier
// keys. A rule returns nil when the ARN does not match the convention it
// expects; the caller then falls back to the generic handling.
type arnRule func(arn ARN, raw string) map[string]string

// arnRules is the closed dispatch table of type-specific decoding rules,
// keyed by resource type tag.
var arnRules = map[string]arnRule{
	// plain name in the resource part
	"AWS::S3::Bucket": func(a ARN, _ string) map[string]string {
		return map[string]string{"BucketName": a.Resource}
	},
	// the queue URL is reconstructed from the ARN segments
	"AWS::SQS::Queue": func(a ARN, _ string) map[string]string {
		if a.Region == "" || a.AccountID == "" {
			return nil
		}
		return map[string]string{
			"QueueUrl": fmt.Sprintf("https://sqs.%s.amazonaws.com/%s/%s", a.Region, a.AccountID, a.Resource),
		}
	},
	// whole-ARN identifiers
	"AWS::SNS::Topic": func(_ ARN, raw string) map[string]string {
		return map[string]string{"TopicArn": raw}
	},
	"AWS::ElasticLoadBalancingV2::LoadBalancer": func(_ ARN, raw string) map[string]string {
		return map[string]string{"LoadBalancerArn": raw}
	},
	"AWS::ElasticLoadBalancingV2::TargetGroup": func(_ ARN, raw string) map[string]string {
		return map[string]string{"TargetGroupArn": raw}
	},
	"AWS::StepFunctions::StateMachine": func(_ ARN, raw string) map[string]string {
		return map[string]string{"Arn": raw}
	},
	// kind/name
	"AWS::IAM::Role": func(a ARN, _ string) map[string]string {
		if !strings.HasPrefix(a.Resource, "role/") {
			return nil
		}
		return map[string]string{"RoleName": a.resourceName()}
	},
	"AWS::IAM::User": func(a ARN, _ string) map[string]string {
		if !strings.HasPrefix(a.Resource, "user/") {
			return nil
		}
		return map[string]string{"UserName": a.resourceName()}
	},
	"AWS::DynamoDB::Table": func(a ARN, _ string) map[string]string {
		kind, name, ok := splitKindSlashName(a.Resource)
		if !ok || kind != "table" {
			return nil
		}
		return map[string]string{"TableName": name}
	},
	"AWS::Kinesis::Stream": func(a ARN, _ string) map[string]string {
		kind, name, ok := splitKindSlashName(a.Resource)
		if !ok || kind != "stream" {
			return nil
		}
		return map[string]string{"Name": name}
	},
	"AWS::EC2::Instance": func(a ARN, _ string) map[string]string {
		kind, id, ok := splitKindSlashName(a.Resource)
		if !ok || kind != "instance" {
			return nil
		}
		return map[string]string{"InstanceId": id}
	},
	// kind:name, optionally kind:name:qualifier
	"AWS::Lambda::Function": func(a ARN, _ string) map[string]string {
		parts := strings.Split(a.Resource, ":")
		if len(parts) < 2 || parts[0] != "function" {
			return nil
		}
		return map[string]string{"FunctionName": parts[1]}
	},
	// kind:name:* with a trailing wildcard segment
	"AWS::Logs::LogGroup": func(a ARN, _ string) map[string]string {
		parts := strings.Split(a.Resource, ":")
		if len(parts) < 2 || parts[0] != "log-group" {
			return nil
		}
		return map[string]string{"LogGroupName": parts[1]}
	},
	// multi-segment kind/parent/name: the parent yields a second key
	"AWS::ECS::Service": func(a ARN, raw string) map[string]string {
		parts := strings.Split(a.Resource, "/")
		if len(parts) != 3 || parts[0] != "service" {
			return nil
		}
		return map[string]string{"ServiceArn": raw, "Cluster": parts[1]}
	},
	"AWS::ECS::Cluster": func(a ARN, _ string) map[string]string {
		kind, name, ok := splitKindSlashName(a.Resource)
		if !ok || kind != "cluster" {
			return nil
		}
		return map[string]string{"ClusterName": name}
	},
}

func splitKindSlashName(resource string) (kind, name string, ok bool) {
	parts := strings.SplitN(resource, "/", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// FromPhysicalID derives the identifier map required to re-register a
// resource from its opaque runtime identity. requiredKeys may come from the
// schema-introspected source; when nil, the built-in registry is consulted.
func FromPhysicalID(resourceType, physicalID string, requiredKeys []string) (map[string]string, error) {
	required := requiredKeys
	if required == nil {
		required, _ = RequiredKeys(resourceType)
	}
	if len(required) == 0 {
		return nil, NewUnresolvableError(resourceType, physicalID, "no identifier keys are known for this resource type")
	}
	if physicalID == "" {
		return nil, NewUnresolvableError(resourceType, physicalID, "resource has no runtime identity")
	}

	if arn, ok := ParseARN(physicalID); ok {
		if rule, found := arnRules[resourceType]; found {
			if m := rule(arn, physicalID); covers(m, required) {
				return m, nil
			}
		}
	}

	// Non-ARN identities (and ARNs no rule understood) fall back to the raw
	// string, which can only satisfy a single-key requirement.
	if len(required) == 1 {
		return map[string]string{required[0]: physicalID}, nil
	}
	return nil, NewUnresolvableError(resourceType, physicalID,
		fmt.Sprintf("a single identity string cannot satisfy identifier keys %v", required))
}

// FromResource derives the identifier map for a still-describable resource,
// merging in priority order: the multi-part identity context, the currently
// observed property bag, the raw runtime id when exactly one key remains,
// and finally the type-specific ARN rules.
func FromResource(resource models.DriftedResource, requiredKeys []string) (map[string]string, error) {
	required := requiredKeys
	if required == nil {
		required, _ = RequiredKeys(resource.ResourceType)
	}
	if len(required) == 0 {
		return nil, NewUnresolvableError(resource.ResourceType, resource.PhysicalID,
			"no identifier keys are known for this resource type")
	}

	m := make(map[string]string, len(required))

	for _, pair := range resource.PhysicalIDContext {
		if containsKey(required, pair.Key) && pair.Value != "" {
			m[pair.Key] = pair.Value
		}
	}

	for _, key := range required {
		if m[key] != "" {
			continue
		}
		if v, ok := scalarProperty(resource.ActualProperties, key); ok {
			m[key] = v
		}
	}

	if missing := missingKeys(m, required); len(missing) == 1 && resource.PhysicalID != "" {
		m[missing[0]] = resource.PhysicalID
	}

	if !covers(m, required) {
		if arn, ok := ParseARN(resource.PhysicalID); ok {
			if rule, found := arnRules[resource.ResourceType]; found {
				for key, value := range rule(arn, resource.PhysicalID) {
					if m[key] == "" {
						m[key] = value
					}
				}
			}
		}
	}

	if covers(m, required) {
		return m, nil
	}
	return nil, NewUnresolvableError(resource.ResourceType, resource.PhysicalID,
		fmt.Sprintf("could not derive identifier keys %v", missingKeys(m, required)))
}

func covers(m map[string]string, required []string) bool {
	if m == nil {
		return false
	}
	for _, key := range required {
		if m[key] == "" {
			return false
		}
	}
	return true
}

func missingKeys(m map[string]string, required []string) []string {
	var missing []string
	for _, key := range required {
		if m[key] == "" {
			missing = append(missing, key)
		}
	}
	return missing
}

func containsKey(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

// scalarProperty extracts a string rendering of a scalar property value.
// Structured values cannot serve as identifier parts and are skipped.
func scalarProperty(properties map[string]any, key string) (string, bool) {
	v, ok := properties[key]
	if !ok || v == nil {
		return "", false
	}
	switch value := v.(type) {
	case string:
		return value, value != ""
	case bool, int, int64, float64:
		return fmt.Sprintf("%v", value), true
	default:
		return "", false
	}
}
