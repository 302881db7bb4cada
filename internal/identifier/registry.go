package identifier

// requiredKeyRegistry is the static, built-in table of identifier keys per
// resource type. The schema-introspected list retrieved from the control
// plane is preferred for the same type; this table is the offline fallback
// and also answers whether a type supports import at all.
//
// Extend by adding entries; the dispatch is a closed table, not a hierarchy.
var requiredKeyRegistry = map[string][]string{
	"AWS::ApiGateway::RestApi":                  {"RestApiId"},
	"AWS::CloudWatch::Alarm":                    {"AlarmName"},
	"AWS::DynamoDB::Table":                      {"TableName"},
	"AWS::EC2::Instance":                        {"InstanceId"},
	"AWS::EC2::InternetGateway":                 {"InternetGatewayId"},
	"AWS::EC2::RouteTable":                      {"RouteTableId"},
	"AWS::EC2::SecurityGroup":                   {"GroupId"},
	"AWS::EC2::Subnet":                          {"SubnetId"},
	"AWS::EC2::VPC":                             {"VpcId"},
	"AWS::ECS::Cluster":                         {"ClusterName"},
	"AWS::ECS::Service":                         {"ServiceArn", "Cluster"},
	"AWS::ElasticLoadBalancingV2::LoadBalancer": {"LoadBalancerArn"},
	"AWS::ElasticLoadBalancingV2::TargetGroup":  {"TargetGroupArn"},
	"AWS::Events::Rule":                         {"Name"},
	"AWS::IAM::InstanceProfile":                 {"InstanceProfileName"},
	"AWS::IAM::ManagedPolicy":                   {"PolicyArn"},
	"AWS::IAM::Role":                            {"RoleName"},
	"AWS::IAM::User":                            {"UserName"},
	"AWS::KMS::Key":                             {"KeyId"},
	"AWS::Kinesis::Stream":                      {"Name"},
	"AWS::Lambda::Function":                     {"FunctionName"},
	"AWS::Logs::LogGroup":                       {"LogGroupName"},
	"AWS::RDS::DBCluster":                       {"DBClusterIdentifier"},
	"AWS::RDS::DBInstance":                      {"DBInstanceIdentifier"},
	"AWS::S3::Bucket":                           {"BucketName"},
	"AWS::SNS::Topic":                           {"TopicArn"},
	"AWS::SQS::Queue":                           {"QueueUrl"},
	"AWS::SecretsManager::Secret":               {"Id"},
	"AWS::StepFunctions::StateMachine":          {"Arn"},
}

// RequiredKeys returns the built-in identifier key list for a resource type.
func RequiredKeys(resourceType string) ([]string, bool) {
	keys, ok := requiredKeyRegistry[resourceType]
	return keys, ok
}

// IsImportable reports whether the built-in registry knows how to identify
// the resource type for re-registration.
func IsImportable(resourceType string) bool {
	_, ok := requiredKeyRegistry[resourceType]
	return ok
}
